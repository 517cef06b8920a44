package api

import (
	"errors"
	"fmt"
	"math"
)

var ErrAxisRange = errors.New("movement axis out of range")

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InputPayload) Validate() error {
	for name, v := range map[string]float64{"dx": p.Dx, "dy": p.Dy} {
		if math.IsNaN(v) || v < -1 || v > 1 {
			return fmt.Errorf("%w: %s=%v", ErrAxisRange, name, v)
		}
	}
	return nil
}

func (c ClientCommand) Validate() error {
	if c.Action == "" {
		return errors.New("action is required")
	}
	return nil
}
