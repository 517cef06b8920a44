package systems

import (
	"math"

	"vicecity-server/internal/domain"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultCameraSmoothing = 0.15
	DefaultCameraLookAhead = 100.0
	lookAheadMinSpeed      = 1.0
)

// Camera - сглаженное слежение за телом с упреждением по курсу.
// X, Y - центр обзора в мировых координатах.
type Camera struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Smoothing float64 `json:"-"`
	LookAhead float64 `json:"-"`
}

func NewCamera(x, y, width, height float64) *Camera {
	return &Camera{
		X: x, Y: y,
		Width: width, Height: height,
		Smoothing: DefaultCameraSmoothing,
		LookAhead: DefaultCameraLookAhead,
	}
}

// Follow сдвигает камеру на долю Smoothing к цели.
// На скорости выше 1 цель выносится вперёд по курсу пропорционально speed/maxSpeed.
func (c *Camera) Follow(target *domain.Body) {
	goal := target.Position()

	if math.Abs(target.Speed) > lookAheadMinSpeed && target.MaxSpeed > 0 {
		goal = goal.Add(target.Facing().Mul(c.LookAhead * target.Speed / target.MaxSpeed))
	}

	pos := mgl64.Vec2{c.X, c.Y}
	pos = pos.Add(goal.Sub(pos).Mul(c.Smoothing))
	c.X, c.Y = pos.X(), pos.Y()
}

// Origin - левый верхний угол видимой области
func (c *Camera) Origin() (float64, float64) {
	return c.X - c.Width/2, c.Y - c.Height/2
}

// InView true, если точка попадает в видимую область, расширенную на margin
func (c *Camera) InView(x, y, margin float64) bool {
	ox, oy := c.Origin()
	return x >= ox-margin && x <= ox+c.Width+margin &&
		y >= oy-margin && y <= oy+c.Height+margin
}
