package systems

import (
	"math"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Параметры автопилота. Время в миллисекундах.
const (
	stuckDistance      = 0.5    // Смещение за шаг меньше этого = стоим
	stuckSpeed         = 0.5    // ...но только если пытаемся ехать
	stuckTimeout       = 1000.0 // Сколько можно стоять до манёвра
	unstuckSpeed       = -2.0   // Скорость заднего хода при выходе из застревания
	turnIntervalMin    = 2000.0
	turnIntervalSpread = 3000.0
	wanderTurnWidth    = math.Pi * 0.3 // Случайный поворот [-0.15π, 0.15π)
	crashTurnWidth     = math.Pi * 0.5 // Поворот при ударе [-0.25π, 0.25π)
	crashSpeedFactor   = 0.5
	cruiseSpeedMin     = 2.0
	cruiseSpeedSpread  = 2.0
	edgeMargin         = 100.0 // Зона у края мира, где курс отражается
)

// AutonomousDriver - автопилот одной машины. Блуждает без планирования пути
// и сам выбирается из застревания.
type AutonomousDriver struct {
	rng RandomSource
}

// NewAutonomousDriver привязывает автопилот к машине и бросает кости
// на крейсерскую скорость и первый интервал поворота.
func NewAutonomousDriver(v *domain.Vehicle, rng RandomSource) *AutonomousDriver {
	v.Driver = &domain.DriverState{
		TargetSpeed:  uniform(rng, cruiseSpeedMin, cruiseSpeedMin+cruiseSpeedSpread),
		TurnDuration: uniform(rng, turnIntervalMin, turnIntervalMin+turnIntervalSpread),
		LastX:        v.X,
		LastY:        v.Y,
	}
	return &AutonomousDriver{rng: rng}
}

// Drive - один шаг автопилота. Машину с игроком не трогает.
func (d *AutonomousDriver) Drive(v *domain.Vehicle, ctx StepContext) DriveReport {
	var report DriveReport
	if v.Occupied || v.Driver == nil {
		return report
	}

	b := v.Body
	st := *v.Driver
	dt := ctx.DeltaTime

	st.TurnTimer += dt

	// 1. Проверка застревания: сравниваем с позицией прошлого шага
	moved := math.Hypot(b.X-st.LastX, b.Y-st.LastY)
	if moved < stuckDistance && math.Abs(b.Speed) > stuckSpeed {
		st.StuckTimer += dt
		if st.StuckTimer > stuckTimeout {
			b.Speed = unstuckSpeed
			b.Angle += math.Pi / 2
			st.StuckTimer = 0
			report.Recovered = true

			logger.Log.WithFields(logrus.Fields{
				"component": "autopilot",
				"vehicle":   v.ID,
				"x":         b.X,
				"y":         b.Y,
			}).Debug("Vehicle stuck, reversing")
		}
	} else {
		st.StuckTimer = 0
	}
	st.LastX, st.LastY = b.X, b.Y

	// 2. Периодическая смена направления
	if st.TurnTimer > st.TurnDuration {
		b.Angle += spread(d.rng, wanderTurnWidth)
		st.TurnTimer = 0
		st.TurnDuration = uniform(d.rng, turnIntervalMin, turnIntervalMin+turnIntervalSpread)
	}

	// 3. Разгон к крейсерской скорости на половинной мощности
	if b.Speed < st.TargetSpeed {
		b.Speed += b.Acceleration * 0.5
	} else {
		b.Speed -= b.Deceleration * 0.5
	}
	b.Speed *= b.Drag

	// 4. Движение. Каждая заблокированная ось - свой бросок поворота.
	newX, newY := Advance(&b)
	report.Move = MoveSeparated(&b, newX, newY, ctx.Field, func(body *domain.Body, axis Axis) {
		body.Speed *= crashSpeedFactor
		body.Angle += spread(d.rng, crashTurnWidth)
	})

	// 5. Мягкие границы: у края отражаем курс внутрь мира
	if b.X < edgeMargin || b.X > ctx.Width-edgeMargin {
		b.Angle = math.Pi - b.Angle
	}
	if b.Y < edgeMargin || b.Y > ctx.Height-edgeMargin {
		b.Angle = -b.Angle
	}

	v.Body = b
	*v.Driver = st
	return report
}
