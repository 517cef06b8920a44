package domain

import "math"

// Input - ввод за один кадр.
// Dx/Dy в [-1, 1], длина вектора не больше 1.
// EnterExit и Attack - импульсы: true ровно в одном кадре на нажатие.
type Input struct {
	Dx        float64 `json:"dx" msgpack:"dx"`
	Dy        float64 `json:"dy" msgpack:"dy"`
	Sprint    bool    `json:"sprint" msgpack:"sprint"`
	EnterExit bool    `json:"enterExit" msgpack:"enterExit"`
	Attack    bool    `json:"attack" msgpack:"attack"`
}

// Normalized обрезает оси до [-1, 1] и нормирует вектор, если его длина больше 1.
func (in Input) Normalized() Input {
	out := in
	out.Dx = math.Max(-1, math.Min(1, in.Dx))
	out.Dy = math.Max(-1, math.Min(1, in.Dy))
	if l := math.Hypot(out.Dx, out.Dy); l > 1 {
		out.Dx /= l
		out.Dy /= l
	}
	return out
}

// HasMovement true, если задано хоть какое-то направление
func (in Input) HasMovement() bool {
	return in.Dx != 0 || in.Dy != 0
}

// Held возвращает копию без импульсов (то, что "зажато")
func (in Input) Held() Input {
	return Input{Dx: in.Dx, Dy: in.Dy, Sprint: in.Sprint}
}
