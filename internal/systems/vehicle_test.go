package systems

import (
	"math"
	"math/rand"
	"testing"

	"vicecity-server/internal/domain"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func sedanAt(x, y, angle, speed float64) *domain.Vehicle {
	v := domain.NewVehicle("car_test", domain.VehicleSedan, x, y, angle)
	v.Speed = speed
	return v
}

func TestDriveVehicleThrottle(t *testing.T) {
	// sedan: acc 0.3, dec 0.15, max 8, drag 0.97
	tests := []struct {
		name      string
		speed     float64
		in        domain.Input
		wantSpeed float64
	}{
		{"accelerate from rest", 0, domain.Input{Dy: -1}, 0.3 * 0.97},
		{"capped at max", 8, domain.Input{Dy: -1}, 8 * 0.97},
		{"brake while moving forward", 5, domain.Input{Dy: 1}, (5 - 0.3) * 0.97},
		{"reverse from rest", 0, domain.Input{Dy: 1}, -0.15 * 0.97},
		{"reverse capped at half max", -4, domain.Input{Dy: 1}, -4 * 0.97},
		{"coast forward", 1, domain.Input{}, 0.85 * 0.97},
		{"coast backward", -1, domain.Input{}, -0.85 * 0.97},
		{"coast does not overshoot zero", 0.1, domain.Input{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sedanAt(500, 500, 0, tt.speed)
			DriveVehicle(v, tt.in, openField)

			assert.InDelta(t, tt.wantSpeed, v.Speed, eps)
			assert.InDelta(t, 500+tt.wantSpeed, v.X, eps, "moves along heading 0")
			assert.InDelta(t, 500, v.Y, eps)
		})
	}
}

func TestDriveVehicleSteering(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		dx        float64
		wantAngle float64
	}{
		// Скорость после затухания 4.85 > 0.5, руль работает
		{"forward right", 5, 1, 0.05 * (4.85 / 8)},
		{"forward left", 5, -1, -0.05 * (4.85 / 8)},
		// На заднем ходу руль инвертируется
		{"reverse right", -3, 1, 0.05 * (-2.85 / 8)},
		// 0.6 - 0.15 = 0.45 < 0.5: руль не работает
		{"too slow to steer", 0.6, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sedanAt(500, 500, 0, tt.speed)
			DriveVehicle(v, domain.Input{Dx: tt.dx}, openField)
			assert.InDelta(t, tt.wantAngle, v.Angle, eps)
		})
	}
}

func TestDriveVehicleBounce(t *testing.T) {
	v := sedanAt(500, 500, 0, 5)

	res := DriveVehicle(v, domain.Input{Dy: -1}, wallAt(525))

	assert.True(t, res.BlockedX)
	assert.False(t, res.BlockedY)
	assert.Equal(t, 500.0, v.X, "X must not change on blocked axis")
	assert.InDelta(t, (5+0.3)*0.97*-0.3, v.Speed, eps)
}

func TestDriveVehicleSpeedStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f, err := NewCollisionField(2000, 2000, []domain.Rect{{X: 900, Y: 900, Width: 200, Height: 200}})
	if err != nil {
		t.Fatal(err)
	}

	for _, kind := range domain.VehicleKinds {
		v := domain.NewVehicle("car", kind, 600, 600, 0)
		for i := 0; i < 2000; i++ {
			in := domain.Input{Dx: rng.Float64()*2 - 1, Dy: float64(rng.Intn(3) - 1)}.Normalized()
			DriveVehicle(v, in, f)

			if v.Speed > v.MaxSpeed || v.Speed < -0.5*v.MaxSpeed {
				t.Fatalf("%s step %d: speed %v out of [%v, %v]", kind, i, v.Speed, -0.5*v.MaxSpeed, v.MaxSpeed)
			}
		}
	}
}

func TestCoastVehicle(t *testing.T) {
	v := sedanAt(100, 100, 0, 1)
	CoastVehicle(v)
	assert.InDelta(t, 0.97, v.Speed, eps)

	// Ниже 0.01 - ровно ноль, и дальше остаётся нулём
	v.Speed = 0.0101
	CoastVehicle(v)
	assert.Equal(t, 0.0, v.Speed)
	for i := 0; i < 10; i++ {
		CoastVehicle(v)
	}
	assert.Equal(t, 0.0, v.Speed)

	v.Speed = -0.005
	CoastVehicle(v)
	assert.Equal(t, 0.0, v.Speed)
	assert.Equal(t, 100.0, v.X, "coasting does not integrate position")
}

func TestVehicleControllers(t *testing.T) {
	v := sedanAt(500, 500, 0, 2)
	ctx := StepContext{Input: domain.Input{Dy: -1}, Field: openField, Width: 1000, Height: 1000}

	var ctrl VehicleController = PlayerControl{}
	ctrl.Drive(v, ctx)
	assert.InDelta(t, 2.3*0.97, v.Speed, eps)

	ctrl = IdleControl{}
	before := v.X
	ctrl.Drive(v, ctx)
	assert.InDelta(t, 2.3*0.97*0.97, v.Speed, eps)
	assert.Equal(t, before, v.X)

	assert.True(t, math.Abs(v.Angle) < eps)
}
