package actions

import "vicecity-server/internal/engine/handlers"

// HandleEnterExit - импульс "сесть/выйти"
func HandleEnterExit(ctx handlers.Context) (handlers.Result, error) {
	ctx.Input.Pulse(true, false)
	return handlers.EmptyResult(), nil
}

// HandleAttack - импульс атаки. Симуляция его только учитывает.
func HandleAttack(ctx handlers.Context) (handlers.Result, error) {
	ctx.Input.Pulse(false, true)
	return handlers.EmptyResult(), nil
}
