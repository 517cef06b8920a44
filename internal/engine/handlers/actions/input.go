package actions

import (
	"vicecity-server/internal/domain"
	"vicecity-server/internal/engine/handlers"
	"vicecity-server/pkg/api"
)

// HandleInput - новое зажатое состояние управления (и, возможно, импульсы)
func HandleInput(ctx handlers.Context, p api.InputPayload) (handlers.Result, error) {
	ctx.Input.Submit(domain.Input{
		Dx:        p.Dx,
		Dy:        p.Dy,
		Sprint:    p.Sprint,
		EnterExit: p.EnterExit,
		Attack:    p.Attack,
	})
	return handlers.EmptyResult(), nil
}
