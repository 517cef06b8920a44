package systems

import "vicecity-server/internal/domain"

// StepContext - всё, что нужно контроллеру на один шаг
type StepContext struct {
	Input     domain.Input
	DeltaTime float64 // Миллисекунды с прошлого кадра
	Field     Collider
	Width     float64 // Границы мира
	Height    float64
}

// DriveReport - итог шага машины
type DriveReport struct {
	Move      MoveResult
	Recovered bool // Сработал выход из застревания
}

// VehicleController - источник управления машиной.
// Тело у машины одно; посадка игрока лишь подменяет контроллер.
type VehicleController interface {
	Drive(v *domain.Vehicle, ctx StepContext) DriveReport
}

// PlayerControl - управление вводом игрока
type PlayerControl struct{}

func (PlayerControl) Drive(v *domain.Vehicle, ctx StepContext) DriveReport {
	return DriveReport{Move: DriveVehicle(v, ctx.Input, ctx.Field)}
}

// IdleControl - пустая машина без водителя катится по инерции
type IdleControl struct{}

func (IdleControl) Drive(v *domain.Vehicle, _ StepContext) DriveReport {
	CoastVehicle(v)
	return DriveReport{}
}
