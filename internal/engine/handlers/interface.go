package handlers

import (
	"encoding/json"

	"vicecity-server/internal/domain"
)

// InputSink принимает ввод клиента до ближайшего шага симуляции.
// engine.InputLatch неявно реализует этот интерфейс.
type InputSink interface {
	Submit(in domain.Input)
	Pulse(enterExit, attack bool)
}

// Context передает хендлеру сессию и точку приёма ввода.
type Context struct {
	Session string
	Input   InputSink
}

// Result - возвращает результат выполнения команды.
// Хендлер не пишет клиенту напрямую, он возвращает данные.
type Result struct {
	SendWorld bool // Клиенту нужен полный кадр INIT с картой
}

// HandlerFunc - это контракт для любой команды (INPUT, ENTER_EXIT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
