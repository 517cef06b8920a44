package domain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body - общее кинематическое состояние любой движущейся сущности.
// Width/Height - полные размеры AABB (не зависят от поворота).
type Body struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"` // Радианы, 0 = вправо
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Speed float64 `json:"speed"` // Скаляр вдоль направления Angle

	MaxSpeed     float64 `json:"maxSpeed"`
	Acceleration float64 `json:"-"`
	Deceleration float64 `json:"-"`
	TurnSpeed    float64 `json:"-"`
	Drag         float64 `json:"-"` // Множитель затухания за шаг, 0 < Drag < 1
}

// Position возвращает позицию как вектор
func (b *Body) Position() mgl64.Vec2 {
	return mgl64.Vec2{b.X, b.Y}
}

// Facing - единичный вектор направления
func (b *Body) Facing() mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(b.Angle), math.Sin(b.Angle)}
}

// DistanceTo возвращает евклидово расстояние до точки
func (b *Body) DistanceTo(x, y float64) float64 {
	return b.Position().Sub(mgl64.Vec2{x, y}).Len()
}

// ClampSpeed ограничивает скорость диапазоном [lo, hi]
func (b *Body) ClampSpeed(lo, hi float64) {
	b.Speed = math.Max(lo, math.Min(hi, b.Speed))
}
