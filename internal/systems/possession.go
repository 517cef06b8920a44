package systems

import (
	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// PossessionChange - результат нажатия "сесть/выйти"
type PossessionChange uint8

const (
	PossessionNone PossessionChange = iota
	PossessionEntered
	PossessionExited
)

func (c PossessionChange) String() string {
	switch c {
	case PossessionEntered:
		return "entered"
	case PossessionExited:
		return "exited"
	}
	return "none"
}

// CanEnter проверяет условия посадки: агент пешком, машина свободна и ближе радиуса взаимодействия.
func CanEnter(a *domain.Agent, v *domain.Vehicle) bool {
	if a.InVehicle() || v == nil || v.Occupied {
		return false
	}
	return a.DistanceTo(v.X, v.Y) < domain.InteractionRadius
}

// Enter сажает агента в машину. При невыполненных условиях ничего не меняет.
func Enter(a *domain.Agent, v *domain.Vehicle) bool {
	if !CanEnter(a, v) {
		return false
	}

	v.Occupied = true
	a.Vehicle = v
	a.Speed = 0
	a.MirrorVehicle()

	logger.Log.WithFields(logrus.Fields{
		"component":  "possession",
		"agent":      a.ID,
		"vehicle":    v.ID,
		"autonomous": v.IsAutonomous(),
	}).Info("Agent entered vehicle")
	return true
}

// Exit высаживает агента перед капотом. Машина сохраняет скорость и курс.
func Exit(a *domain.Agent) bool {
	v := a.Vehicle
	if v == nil {
		return false
	}

	v.Occupied = false
	a.Vehicle = nil

	exit := v.Position().Add(v.Facing().Mul(domain.ExitOffset))
	a.X, a.Y = exit.X(), exit.Y()
	a.Angle = v.Angle
	a.Speed = 0

	logger.Log.WithFields(logrus.Fields{
		"component": "possession",
		"agent":     a.ID,
		"vehicle":   v.ID,
		"x":         a.X,
		"y":         a.Y,
	}).Info("Agent exited vehicle")
	return true
}

// NearestVehicle ищет ближайшую свободную машину в радиусе взаимодействия.
// Группы просматриваются по порядку, при равенстве выигрывает первая найденная.
func NearestVehicle(a *domain.Agent, groups ...[]*domain.Vehicle) *domain.Vehicle {
	var best *domain.Vehicle
	bestDist := domain.InteractionRadius

	for _, group := range groups {
		for _, v := range group {
			if v == nil || v.Occupied {
				continue
			}
			if d := a.DistanceTo(v.X, v.Y); d < bestDist {
				best, bestDist = v, d
			}
		}
	}
	return best
}

// ToggleVehicle - обработка нажатия "сесть/выйти".
func ToggleVehicle(a *domain.Agent, groups ...[]*domain.Vehicle) (PossessionChange, *domain.Vehicle) {
	if a.InVehicle() {
		v := a.Vehicle
		Exit(a)
		return PossessionExited, v
	}

	v := NearestVehicle(a, groups...)
	if v == nil || !Enter(a, v) {
		return PossessionNone, nil
	}
	return PossessionEntered, v
}
