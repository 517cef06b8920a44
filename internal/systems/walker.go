package systems

import (
	"math"

	"vicecity-server/internal/domain"
)

// WalkAgent - шаг игрока пешком. Ввод не нормализуется повторно:
// диагональ уже ограничена в domain.Input.Normalized.
func WalkAgent(a *domain.Agent, in domain.Input, field Collider) MoveResult {
	b := a.Body

	if !in.HasMovement() {
		b.Speed = 0
		a.Body = b
		return MoveResult{}
	}

	speed := a.WalkSpeed
	if in.Sprint {
		speed = a.SprintSpeed
	}

	b.Angle = math.Atan2(in.Dy, in.Dx)
	b.Speed = speed

	res := MoveSeparated(&b, b.X+in.Dx*speed, b.Y+in.Dy*speed, field, nil)
	a.Body = b
	return res
}
