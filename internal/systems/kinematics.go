package systems

import (
	"math"

	"vicecity-server/internal/domain"
)

// Axis - ось, по которой проверяется перемещение
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// CollisionResponse вызывается для каждой заблокированной оси.
// Позиция по этой оси при этом не меняется.
type CollisionResponse func(b *domain.Body, axis Axis)

// MoveResult - какие оси были заблокированы на этом шаге
type MoveResult struct {
	BlockedX bool
	BlockedY bool
}

// Blocked true, если была заблокирована хотя бы одна ось
func (r MoveResult) Blocked() bool {
	return r.BlockedX || r.BlockedY
}

// Advance вычисляет кандидатную позицию при движении вдоль курса со скоростью Speed.
func Advance(b *domain.Body) (newX, newY float64) {
	return b.X + math.Cos(b.Angle)*b.Speed, b.Y + math.Sin(b.Angle)*b.Speed
}

// MoveSeparated перемещает тело раздельно по осям: сначала X при старом Y,
// затем Y при уже зафиксированном X. Заблокированная ось не двигается,
// но вторая может, так тело скользит вдоль стены.
func MoveSeparated(b *domain.Body, newX, newY float64, field Collider, respond CollisionResponse) MoveResult {
	var res MoveResult

	if !field.Query(newX, b.Y, b.Width, b.Height) {
		b.X = newX
	} else {
		res.BlockedX = true
		if respond != nil {
			respond(b, AxisX)
		}
	}

	if !field.Query(b.X, newY, b.Width, b.Height) {
		b.Y = newY
	} else {
		res.BlockedY = true
		if respond != nil {
			respond(b, AxisY)
		}
	}

	return res
}
