package systems

import (
	"errors"
	"fmt"

	"vicecity-server/internal/domain"
)

var (
	ErrInvalidWorld    = errors.New("world size must be positive")
	ErrInvalidObstacle = errors.New("obstacle must have positive extents")
)

// Collider отвечает на вопрос "можно ли поставить сюда прямоугольник".
type Collider interface {
	// Query возвращает true, если прямоугольник с центром (cx, cy) выходит за границы мира
	// или пересекается с препятствием.
	Query(cx, cy, width, height float64) bool
}

// CollisionField - статическая карта препятствий. После создания не изменяется,
// поэтому безопасна для чтения из любого количества сущностей.
type CollisionField struct {
	width, height float64
	obstacles     []domain.Rect
}

// NewCollisionField проверяет геометрию и строит поле.
func NewCollisionField(width, height float64, obstacles []domain.Rect) (*CollisionField, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidWorld, width, height)
	}
	for i, o := range obstacles {
		if o.IsDegenerate() {
			return nil, fmt.Errorf("%w: obstacle #%d %+v", ErrInvalidObstacle, i, o)
		}
	}

	// Копируем, чтобы вызывающий не мог поменять карту снаружи
	own := make([]domain.Rect, len(obstacles))
	copy(own, obstacles)

	return &CollisionField{width: width, height: height, obstacles: own}, nil
}

// Query - O(N) по числу препятствий, без побочных эффектов.
func (f *CollisionField) Query(cx, cy, width, height float64) bool {
	bounds := domain.RectAround(cx, cy, width, height)

	// 1. Границы мира. Касание границы допустимо.
	if bounds.X < 0 || bounds.Y < 0 || bounds.MaxX() > f.width || bounds.MaxY() > f.height {
		return true
	}

	// 2. Здания
	for _, o := range f.obstacles {
		if bounds.Intersects(o) {
			return true
		}
	}
	return false
}

func (f *CollisionField) Width() float64  { return f.width }
func (f *CollisionField) Height() float64 { return f.height }

// Obstacles возвращает копию списка препятствий (для рендера и миникарты)
func (f *CollisionField) Obstacles() []domain.Rect {
	out := make([]domain.Rect, len(f.obstacles))
	copy(out, f.obstacles)
	return out
}
