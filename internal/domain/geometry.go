package domain

// Rect - прямоугольник с началом в левом верхнем углу (+x вправо, +y вниз).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// RectAround строит прямоугольник заданного размера с центром в (cx, cy).
func RectAround(cx, cy, width, height float64) Rect {
	return Rect{X: cx - width/2, Y: cy - height/2, Width: width, Height: height}
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Intersects - строгое пересечение: касание рёбрами пересечением НЕ считается.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.MaxX() && other.X < r.MaxX() &&
		r.Y < other.MaxY() && other.Y < r.MaxY()
}

// IsDegenerate true для нулевой или отрицательной площади.
func (r Rect) IsDegenerate() bool {
	return r.Width <= 0 || r.Height <= 0
}
