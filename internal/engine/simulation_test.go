package engine

import (
	"errors"
	"math"
	"testing"

	"vicecity-server/internal/domain"
	"vicecity-server/internal/systems"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulationPopulatesCity(t *testing.T) {
	cfg := testConfig()
	cfg.ParkingSpots = []Spot{{X: 300, Y: 300}, {X: 900, Y: 900}}

	sim, err := NewSimulation(cfg)
	require.NoError(t, err)

	assert.Len(t, sim.Parked, 2)
	assert.Len(t, sim.Traffic, 3)
	assert.Len(t, sim.Pedestrians, 5)
	assert.NotEmpty(t, sim.Layout.Buildings)

	// Никто не заспавнен в стене
	for _, v := range sim.Vehicles() {
		assert.False(t, sim.Field.Query(v.X, v.Y, v.Width, v.Height), "vehicle %s spawned inside an obstacle", v.ID)
	}
	for _, p := range sim.Pedestrians {
		assert.False(t, sim.Field.Query(p.X, p.Y, p.Width, p.Height), "pedestrian %s spawned inside an obstacle", p.ID)
		assert.GreaterOrEqual(t, p.X, cfg.PedestrianMargin)
		assert.LessOrEqual(t, p.Y, cfg.WorldHeight-cfg.PedestrianMargin)
	}
	for _, v := range sim.Traffic {
		assert.True(t, v.IsAutonomous())
	}
	for _, v := range sim.Parked {
		assert.False(t, v.IsAutonomous())
	}

	assert.Equal(t, PlayerID, sim.Agent.ID)
	assert.Equal(t, 600.0, sim.Camera.X)
}

func TestNewSimulationIsDeterministic(t *testing.T) {
	a, err := NewSimulation(testConfig())
	require.NoError(t, err)
	b, err := NewSimulation(testConfig())
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		in := domain.Input{Dx: math.Sin(float64(i) / 10), Dy: -1}
		a.Step(16, in)
		b.Step(16, in)
	}

	assert.Equal(t, a.Agent.Body, b.Agent.Body)
	for i := range a.Traffic {
		assert.Equal(t, a.Traffic[i].Body, b.Traffic[i].Body)
		assert.Equal(t, *a.Traffic[i].Driver, *b.Traffic[i].Driver)
	}
	for i := range a.Pedestrians {
		assert.Equal(t, *a.Pedestrians[i], *b.Pedestrians[i])
	}
}

func TestNewSimulationNoSpawnPoint(t *testing.T) {
	cfg := testConfig()
	// Машина 40x70 не помещается в мир высотой 50
	cfg.WorldWidth, cfg.WorldHeight = 50, 50
	cfg.PedestrianMargin = 10
	cfg.PedestrianCount = 0
	cfg.TrafficCount = 1
	cfg.SpawnAttempts = 20

	_, err := NewSimulation(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSpawnPoint))
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 0

	_, err := NewSimulation(cfg)
	assert.Error(t, err)
}

func TestStepPossessionRoundTrip(t *testing.T) {
	sim, err := NewSimulation(garageConfig())
	require.NoError(t, err)
	car := sim.Parked[0]

	// 1. Посадка: агент принимает позицию машины
	rep := sim.Step(16, domain.Input{EnterExit: true})
	require.Equal(t, systems.PossessionEntered, rep.Possession)
	assert.Equal(t, car.ID, rep.Vehicle)
	assert.True(t, car.Occupied)
	assert.Same(t, car, sim.Agent.Vehicle)
	assert.Equal(t, car.X, sim.Agent.X)

	// 2. Газ: едет машина, агент повторяет её
	for i := 0; i < 30; i++ {
		sim.Step(16, domain.Input{Dy: -1})
	}
	assert.Greater(t, car.Speed, 0.0)
	assert.Equal(t, car.X, sim.Agent.X)
	assert.Equal(t, car.Y, sim.Agent.Y)

	// 3. Высадка: агент в 50 единицах по курсу машины
	x, y, angle := car.X, car.Y, car.Angle
	rep = sim.Step(16, domain.Input{EnterExit: true})
	require.Equal(t, systems.PossessionExited, rep.Possession)
	assert.False(t, car.Occupied)
	assert.InDelta(t, x+50*math.Cos(angle), sim.Agent.X, 1e-9)
	assert.InDelta(t, y+50*math.Sin(angle), sim.Agent.Y, 1e-9)

	// 4. Пустая машина катится и гаснет до нуля
	for i := 0; i < 1000; i++ {
		sim.Step(16, domain.Input{})
	}
	assert.Equal(t, 0.0, car.Speed)
}

func TestStepEnterRequiresPulse(t *testing.T) {
	sim, err := NewSimulation(garageConfig())
	require.NoError(t, err)

	// Игрок отошёл дальше радиуса посадки
	sim.Agent.X = 500
	rep := sim.Step(16, domain.Input{EnterExit: true})
	assert.Equal(t, systems.PossessionNone, rep.Possession)
	assert.False(t, sim.Agent.InVehicle())

	sim.Agent.X = 600
	sim.Step(16, domain.Input{})
	assert.False(t, sim.Agent.InVehicle(), "no pulse, no entry")
}

func TestStepPossessedTrafficUsesPlayerControl(t *testing.T) {
	cfg := garageConfig()
	cfg.ParkingSpots = nil
	cfg.TrafficCount = 1
	sim, err := NewSimulation(cfg)
	require.NoError(t, err)

	car := sim.Traffic[0]
	car.X, car.Y, car.Angle, car.Speed = 600, 300, 0, 4
	sim.Agent.X, sim.Agent.Y = 580, 300

	rep := sim.Step(16, domain.Input{EnterExit: true})
	require.Equal(t, systems.PossessionEntered, rep.Possession)
	driverBefore := *car.Driver

	// Без газа: управление игрока гасит скорость на deceleration, автопилот не трогает таймеры
	spec := domain.SpecFor(car.Kind)
	speed := car.Speed
	sim.Step(16, domain.Input{})

	assert.InDelta(t, (speed-spec.Deceleration)*spec.Drag, car.Speed, 1e-9)
	assert.Equal(t, driverBefore, *car.Driver)
}

func TestStepReportsAttack(t *testing.T) {
	sim, err := NewSimulation(garageConfig())
	require.NoError(t, err)

	assert.True(t, sim.Step(16, domain.Input{Attack: true}).Attack)
	assert.False(t, sim.Step(16, domain.Input{}).Attack)
	assert.Equal(t, uint64(2), sim.Frame)
	assert.Equal(t, 32.0, sim.Elapsed)
}

func TestStepCameraFollowsActiveBody(t *testing.T) {
	sim, err := NewSimulation(garageConfig())
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		sim.Step(16, domain.Input{Dx: 1})
	}
	assert.Greater(t, sim.Camera.X, 600.0)
	assert.Less(t, sim.Camera.X, sim.Agent.X+sim.Camera.LookAhead)
}
