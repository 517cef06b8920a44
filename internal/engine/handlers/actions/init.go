package actions

import "vicecity-server/internal/engine/handlers"

// HandleInit - клиент (пере)подключился и просит карту
func HandleInit(_ handlers.Context) (handlers.Result, error) {
	return handlers.Result{SendWorld: true}, nil
}
