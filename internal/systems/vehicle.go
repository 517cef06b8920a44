package systems

import (
	"math"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	reverseLimitFactor  = 0.5  // Задний ход ограничен половиной максимальной скорости
	brakeFactor         = 2.0  // Торможение при движении вперёд
	reverseAccelFactor  = 0.5  // Разгон назад
	steerSpeedThreshold = 0.5  // Ниже этой скорости руль не работает
	bounceFactor        = -0.3 // Отскок от стены с потерей энергии
	restThreshold       = 0.01 // Ниже - машина стоит
)

// DriveVehicle - шаг машины под управлением игрока.
// Состояние считается на копии тела и фиксируется целиком в конце.
func DriveVehicle(v *domain.Vehicle, in domain.Input, field Collider) MoveResult {
	b := v.Body

	// 1. Газ / тормоз / задний ход
	switch {
	case in.Dy < 0:
		b.Speed += b.Acceleration
	case in.Dy > 0:
		if b.Speed > 0 {
			b.Speed -= b.Deceleration * brakeFactor
		} else {
			b.Speed -= b.Acceleration * reverseAccelFactor
		}
	default:
		b.Speed = approachZero(b.Speed, b.Deceleration)
	}

	// 2. Ограничение скорости
	b.ClampSpeed(-b.MaxSpeed*reverseLimitFactor, b.MaxSpeed)

	// 3. Руль. Эффект пропорционален скорости и меняет знак на заднем ходу.
	if math.Abs(b.Speed) > steerSpeedThreshold {
		b.Angle += in.Dx * b.TurnSpeed * (b.Speed / b.MaxSpeed)
	}

	// 4. Сопротивление
	b.Speed *= b.Drag

	// 5-6. Интеграция и коллизии
	newX, newY := Advance(&b)
	res := MoveSeparated(&b, newX, newY, field, func(body *domain.Body, axis Axis) {
		body.Speed *= bounceFactor
	})

	if res.Blocked() {
		logger.Log.WithFields(logrus.Fields{
			"component": "vehicle",
			"vehicle":   v.ID,
			"blocked_x": res.BlockedX,
			"blocked_y": res.BlockedY,
			"speed":     b.Speed,
		}).Debug("Vehicle bounced off obstacle")
	}

	v.Body = b
	return res
}

// CoastVehicle - пустая машина: только затухание до полной остановки.
func CoastVehicle(v *domain.Vehicle) {
	v.Speed *= v.Drag
	if math.Abs(v.Speed) < restThreshold {
		v.Speed = 0
	}
}

// approachZero уменьшает модуль скорости на step, не перескакивая через ноль.
func approachZero(speed, step float64) float64 {
	switch {
	case speed > 0:
		return math.Max(0, speed-step)
	case speed < 0:
		return math.Min(0, speed+step)
	}
	return 0
}
