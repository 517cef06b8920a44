package systems

import (
	"math"
	"testing"

	"vicecity-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnPedestrian(t *testing.T) {
	tests := []struct {
		name      string
		stateRoll float64
		want      domain.PedestrianState
	}{
		{"walking", 0.9, domain.PedestrianWalking},
		{"boundary stays idle", 0.3, domain.PedestrianIdle},
		{"idle", 0.1, domain.PedestrianIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// угол, скорость, длительность ходьбы, паузы, состояние
			p := SpawnPedestrian("ped_1", domain.PedestrianShopkeeper, 10, 20, script(0.25, 0.5, 0.5, 0.5, tt.stateRoll))

			assert.Equal(t, tt.want, p.State)
			assert.InDelta(t, math.Pi/2, p.Angle, eps)
			assert.InDelta(t, math.Pi/2, p.TargetAngle, eps)
			assert.InDelta(t, 0.75, p.Speed, eps)
			assert.InDelta(t, 3500.0, p.WalkDuration, eps)
			assert.InDelta(t, 2000.0, p.IdleDuration, eps)
			assert.Equal(t, float64(domain.PedestrianSize), p.Width)
			assert.Equal(t, domain.PedestrianShopkeeper, p.Kind)
		})
	}
}

func walkingPedestrian() *domain.Pedestrian {
	return &domain.Pedestrian{
		ID:           "ped_test",
		Body:         domain.Body{X: 500, Y: 500, Width: 15, Height: 15, Speed: 1, MaxSpeed: 1},
		State:        domain.PedestrianWalking,
		WalkDuration: 5000,
		IdleDuration: 5000,
	}
}

func TestPedestrianWalkMovesAndEases(t *testing.T) {
	p := walkingPedestrian()
	p.TargetAngle = 1.0

	NewPedestrianController(script(0.5)).Update(p, 16, openField)

	assert.InDelta(t, 0.05, p.Angle, eps, "5% of the gap per step")
	assert.InDelta(t, 500+math.Cos(0.05), p.X, eps)
	assert.InDelta(t, 500+math.Sin(0.05), p.Y, eps)
	assert.Equal(t, 16.0, p.WalkTimer)
	assert.Equal(t, 1.0, p.Speed, "speed is fixed")
}

func TestPedestrianDirectionResample(t *testing.T) {
	tests := []struct {
		name       string
		rolls      []float64
		wantTarget float64
	}{
		{"resampled", []float64{0.8, 0.9}, 0.4 * math.Pi * 0.5},
		{"kept at threshold", []float64{0.7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := walkingPedestrian()
			p.DirectionTimer = 990

			NewPedestrianController(script(tt.rolls...)).Update(p, 20, openField)

			assert.InDelta(t, tt.wantTarget, p.TargetAngle, eps)
			assert.Equal(t, 0.0, p.DirectionTimer, "timer resets either way")
		})
	}
}

func TestPedestrianCollisionTurnsAround(t *testing.T) {
	eased := 0.2 * 0.05

	tests := []struct {
		name  string
		field Collider
		want  float64
	}{
		// Угол: разворот по каждой оси, итого полный оборот
		{"corner", blockedField, eased + 2*math.Pi},
		{"wall", wallAt(508), eased + math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := walkingPedestrian()
			p.TargetAngle = 0.2

			NewPedestrianController(script(0.5)).Update(p, 16, tt.field)

			assert.InDelta(t, tt.want, p.Angle, eps)
			assert.InDelta(t, tt.want, p.TargetAngle, eps)
			assert.Equal(t, 500.0, p.X)
		})
	}
}

func TestPedestrianWalkToIdle(t *testing.T) {
	p := walkingPedestrian()
	p.WalkDuration = 150
	c := NewPedestrianController(script(0.5))

	// Ровно длительность - ещё идёт
	c.Update(p, 150, openField)
	require.Equal(t, domain.PedestrianWalking, p.State)

	c.Update(p, 1, openField)
	assert.Equal(t, domain.PedestrianIdle, p.State)
	assert.Equal(t, 0.0, p.WalkTimer)
	assert.InDelta(t, 2000.0, p.IdleDuration, eps)
}

func TestPedestrianIdleToWalking(t *testing.T) {
	p := walkingPedestrian()
	p.State = domain.PedestrianIdle
	p.IdleDuration = 1500
	c := NewPedestrianController(script(0.5, 0.25))

	c.Update(p, 1500, openField)
	require.Equal(t, domain.PedestrianIdle, p.State)
	assert.Equal(t, 500.0, p.X, "idle pedestrians stand still")

	c.Update(p, 16, openField)
	assert.Equal(t, domain.PedestrianWalking, p.State)
	assert.Equal(t, 0.0, p.IdleTimer)
	assert.Equal(t, 0.0, p.WalkTimer)
	assert.InDelta(t, 3500.0, p.WalkDuration, eps)
	assert.InDelta(t, 0.25*2*math.Pi, p.TargetAngle, eps)
}
