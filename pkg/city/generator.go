package city

import (
	"math"
	"math/rand"

	"vicecity-server/internal/domain"
)

// Параметры генерации по умолчанию
const (
	DefaultTileSize   = 100.0
	DefaultDensity    = 0.7 // Вероятность здания в квартале
	BlockEvery        = 3   // Каждая третья строка/колонка тайлов - дорога
	BuildingFootprint = 0.8 // Доля тайла, занятая зданием
)

// Layout - сгенерированный город: сетка дорог и здания-препятствия.
type Layout struct {
	Width     float64
	Height    float64
	TileSize  float64
	Columns   int
	Rows      int
	Roads     []domain.Rect
	Buildings []domain.Rect
}

// IsRoadTile true для тайлов дорожной сетки
func IsRoadTile(i, j int) bool {
	return i%BlockEvery == 0 || j%BlockEvery == 0
}

// Builder предоставляет fluent API для генерации города
type Builder struct {
	width, height float64
	tileSize      float64
	density       float64
	rng           *rand.Rand
}

// New создает builder для мира заданного размера
func New(width, height float64, rng *rand.Rand) *Builder {
	return &Builder{
		width:    width,
		height:   height,
		tileSize: DefaultTileSize,
		density:  DefaultDensity,
		rng:      rng,
	}
}

// WithTileSize задаёт размер тайла
func (b *Builder) WithTileSize(size float64) *Builder {
	if size > 0 {
		b.tileSize = size
	}
	return b
}

// WithDensity задаёт вероятность застройки квартала [0, 1]
func (b *Builder) WithDensity(density float64) *Builder {
	b.density = math.Max(0, math.Min(1, density))
	return b
}

// Build проходит по сетке: дороги на каждой третьей линии, в остальных тайлах
// здание с вероятностью density.
func (b *Builder) Build() *Layout {
	l := &Layout{
		Width:    b.width,
		Height:   b.height,
		TileSize: b.tileSize,
		Columns:  int(math.Ceil(b.width / b.tileSize)),
		Rows:     int(math.Ceil(b.height / b.tileSize)),
	}

	size := b.tileSize * BuildingFootprint
	inset := (b.tileSize - size) / 2

	for i := 0; i < l.Columns; i++ {
		for j := 0; j < l.Rows; j++ {
			x := float64(i) * b.tileSize
			y := float64(j) * b.tileSize

			if IsRoadTile(i, j) {
				l.Roads = append(l.Roads, domain.Rect{X: x, Y: y, Width: b.tileSize, Height: b.tileSize})
				continue
			}
			if b.rng.Float64() < b.density {
				l.Buildings = append(l.Buildings, domain.Rect{X: x + inset, Y: y + inset, Width: size, Height: size})
			}
		}
	}

	return l
}
