package systems

import (
	"math"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Параметры пешеходов. Время в миллисекундах.
const (
	walkDurationMin    = 2000.0
	walkDurationSpread = 3000.0
	idleDurationMin    = 1000.0
	idleDurationSpread = 2000.0
	directionInterval  = 1000.0
	directionChance    = 0.7 // Смена цели, если бросок больше
	startWalkingChance = 0.3
	directionTurnWidth = math.Pi * 0.5
	steerEasing        = 0.05 // Доля разницы курса, закрываемая за шаг
	pedestrianSpeedMin = 0.5
	pedestrianSpeedMax = 1.0
)

// SpawnPedestrian создает пешехода со случайным курсом, скоростью и начальным состоянием.
func SpawnPedestrian(id domain.EntityID, kind domain.PedestrianKind, x, y float64, rng RandomSource) *domain.Pedestrian {
	angle := uniform(rng, 0, 2*math.Pi)
	p := &domain.Pedestrian{
		ID:   id,
		Kind: kind,
		Body: domain.Body{
			X: x, Y: y, Angle: angle,
			Width: domain.PedestrianSize, Height: domain.PedestrianSize,
			Speed:    uniform(rng, pedestrianSpeedMin, pedestrianSpeedMax),
			MaxSpeed: pedestrianSpeedMax,
		},
		TargetAngle:  angle,
		WalkDuration: uniform(rng, walkDurationMin, walkDurationMin+walkDurationSpread),
		IdleDuration: uniform(rng, idleDurationMin, idleDurationMin+idleDurationSpread),
		State:        domain.PedestrianIdle,
	}
	if rng.Float64() > startWalkingChance {
		p.State = domain.PedestrianWalking
	}
	return p
}

// PedestrianController - блуждание пешехода: ходьба / пауза.
type PedestrianController struct {
	rng RandomSource
}

func NewPedestrianController(rng RandomSource) *PedestrianController {
	return &PedestrianController{rng: rng}
}

// Update продвигает конечный автомат пешехода на dt миллисекунд.
func (c *PedestrianController) Update(p *domain.Pedestrian, dt float64, field Collider) {
	next := *p

	switch next.State {
	case domain.PedestrianWalking:
		c.walk(&next, dt, field)
	case domain.PedestrianIdle:
		next.IdleTimer += dt
		if next.IdleTimer > next.IdleDuration {
			next.State = domain.PedestrianWalking
			next.IdleTimer = 0
			next.WalkDuration = uniform(c.rng, walkDurationMin, walkDurationMin+walkDurationSpread)
			next.TargetAngle = uniform(c.rng, 0, 2*math.Pi)
		}
	}

	if next.State != p.State {
		logger.Log.WithFields(logrus.Fields{
			"component":  "pedestrian",
			"pedestrian": p.ID,
			"from":       p.State.String(),
			"to":         next.State.String(),
		}).Trace("Pedestrian state changed")
	}

	*p = next
}

func (c *PedestrianController) walk(p *domain.Pedestrian, dt float64, field Collider) {
	p.WalkTimer += dt
	p.DirectionTimer += dt

	if p.DirectionTimer > directionInterval {
		if c.rng.Float64() > directionChance {
			p.TargetAngle = p.Angle + spread(c.rng, directionTurnWidth)
		}
		p.DirectionTimer = 0
	}

	// Плавный доворот к цели
	p.Angle += (p.TargetAngle - p.Angle) * steerEasing

	newX, newY := Advance(&p.Body)
	// Разворот на 180 по каждой заблокированной оси: в углу это полный оборот.
	// Цель фиксируется, чтобы не довернуть обратно в стену.
	if res := MoveSeparated(&p.Body, newX, newY, field, turnAround); res.Blocked() {
		p.TargetAngle = p.Angle
	}

	if p.WalkTimer > p.WalkDuration {
		p.State = domain.PedestrianIdle
		p.WalkTimer = 0
		p.IdleDuration = uniform(c.rng, idleDurationMin, idleDurationMin+idleDurationSpread)
	}
}

func turnAround(b *domain.Body, _ Axis) {
	b.Angle += math.Pi
}
