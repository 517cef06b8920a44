package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"vicecity-server/pkg/api"
)

var (
	ErrMissingPayload = errors.New("payload is required")
	ErrBadPayload     = errors.New("bad payload")
)

// PayloadHandler получает уже разобранный и проверенный payload (например api.InputPayload для INPUT)
type PayloadHandler[T api.Validator] func(ctx Context, payload T) (Result, error)

// PulseHandler - команда без данных: INIT, ENTER_EXIT, ATTACK
type PulseHandler func(ctx Context) (Result, error)

// WithPayload делает из PayloadHandler общий HandlerFunc:
// пустой payload - ошибка, кривой JSON - ErrBadPayload, затем Validate.
func WithPayload[T api.Validator](handler PayloadHandler[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return Result{}, ErrMissingPayload
		}

		var payload T
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		if err := payload.Validate(); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload - импульсные команды. Payload, если клиент его прислал, игнорируется.
func WithEmptyPayload(handler PulseHandler) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
