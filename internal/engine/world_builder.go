package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"vicecity-server/internal/domain"
	"vicecity-server/internal/systems"
	"vicecity-server/pkg/city"
	"vicecity-server/pkg/logger"
	"vicecity-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// PlayerID - ID агента игрока (он в мире один)
const PlayerID domain.EntityID = "player"

var ErrNoSpawnPoint = errors.New("no free spawn point")

// spawner ищет свободные точки на карте
type spawner struct {
	field    *systems.CollisionField
	rng      *rand.Rand
	attempts int
}

// freePoint бросает случайные точки в [minX,maxX)x[minY,maxY), пока прямоугольник не встанет без коллизий
func (s *spawner) freePoint(minX, minY, maxX, maxY, w, h float64) (float64, float64, error) {
	for i := 0; i < s.attempts; i++ {
		x := minX + s.rng.Float64()*(maxX-minX)
		y := minY + s.rng.Float64()*(maxY-minY)
		if !s.field.Query(x, y, w, h) {
			return x, y, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %vx%v after %d attempts", ErrNoSpawnPoint, w, h, s.attempts)
}

func (s *spawner) anywhere(w, h float64) (float64, float64, error) {
	return s.freePoint(0, 0, s.field.Width(), s.field.Height(), w, h)
}

func (s *spawner) vehicleKind() domain.VehicleKind {
	return domain.VehicleKinds[s.rng.Intn(len(domain.VehicleKinds))]
}

// buildWorld генерирует город и расставляет все сущности.
// Одинаковый Config (включая Seed) всегда дает одинаковый мир.
func buildWorld(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 1. Карта
	layout := city.New(cfg.WorldWidth, cfg.WorldHeight, utils.NewRand(cfg.Seed, utils.StreamCity)).
		WithTileSize(cfg.TileSize).
		WithDensity(cfg.BuildingDensity).
		Build()

	field, err := systems.NewCollisionField(cfg.WorldWidth, cfg.WorldHeight, layout.Buildings)
	if err != nil {
		return nil, fmt.Errorf("build collision field: %w", err)
	}

	sp := &spawner{field: field, rng: utils.NewRand(cfg.Seed, utils.StreamSpawn), attempts: cfg.SpawnAttempts}
	sim := &Simulation{
		Config: cfg,
		Layout: layout,
		Field:  field,
	}

	// 2. Игрок в центре мира
	agent := domain.NewAgent(PlayerID, cfg.WorldWidth/2, cfg.WorldHeight/2)
	if field.Query(agent.X, agent.Y, agent.Width, agent.Height) {
		if agent.X, agent.Y, err = sp.anywhere(agent.Width, agent.Height); err != nil {
			return nil, fmt.Errorf("place agent: %w", err)
		}
	}
	sim.Agent = agent

	// 3. Припаркованные машины. Занятая зданием стоянка заменяется случайной точкой.
	for i, spot := range cfg.ParkingSpots {
		kind := sp.vehicleKind()
		spec := domain.SpecFor(kind)
		angle := sp.rng.Float64() * 2 * math.Pi

		x, y := spot.X, spot.Y
		if field.Query(x, y, spec.Width, spec.Height) {
			if x, y, err = sp.anywhere(spec.Width, spec.Height); err != nil {
				return nil, fmt.Errorf("place parked vehicle %d: %w", i, err)
			}
			logger.Log.WithFields(logrus.Fields{
				"component": "world_builder",
				"spot_x":    spot.X,
				"spot_y":    spot.Y,
				"x":         x,
				"y":         y,
			}).Debug("Parking spot blocked, vehicle moved")
		}

		sim.Parked = append(sim.Parked, domain.NewVehicle(domain.EntityID(fmt.Sprintf("car_%d", i)), kind, x, y, angle))
	}

	// 4. Трафик: своя последовательность бросков на каждую машину
	for i := 0; i < cfg.TrafficCount; i++ {
		kind := sp.vehicleKind()
		spec := domain.SpecFor(kind)
		x, y, err := sp.anywhere(spec.Width, spec.Height)
		if err != nil {
			return nil, fmt.Errorf("place traffic vehicle %d: %w", i, err)
		}
		angle := sp.rng.Float64() * 2 * math.Pi

		v := domain.NewVehicle(domain.EntityID(fmt.Sprintf("ai_%d", i)), kind, x, y, angle)
		driver := systems.NewAutonomousDriver(v, utils.NewEntityRand(cfg.Seed, utils.StreamTraffic, int64(i)))

		sim.Traffic = append(sim.Traffic, v)
		sim.autopilots = append(sim.autopilots, driver)
	}

	// 5. Пешеходы: не ближе PedestrianMargin к краю
	m := cfg.PedestrianMargin
	for i := 0; i < cfg.PedestrianCount; i++ {
		x, y, err := sp.freePoint(m, m, cfg.WorldWidth-m, cfg.WorldHeight-m, domain.PedestrianSize, domain.PedestrianSize)
		if err != nil {
			return nil, fmt.Errorf("place pedestrian %d: %w", i, err)
		}
		kind := domain.PedestrianKinds[sp.rng.Intn(len(domain.PedestrianKinds))]

		rng := utils.NewEntityRand(cfg.Seed, utils.StreamPedestrians, int64(i))
		p := systems.SpawnPedestrian(domain.EntityID(fmt.Sprintf("ped_%d", i)), kind, x, y, rng)

		sim.Pedestrians = append(sim.Pedestrians, p)
		sim.walkers = append(sim.walkers, systems.NewPedestrianController(rng))
	}

	// 6. Камера сразу над игроком
	sim.Camera = systems.NewCamera(agent.X, agent.Y, cfg.ViewportWidth, cfg.ViewportHeight)

	logger.Log.WithFields(logrus.Fields{
		"component":   "world_builder",
		"seed":        cfg.Seed,
		"buildings":   len(layout.Buildings),
		"parked":      len(sim.Parked),
		"traffic":     len(sim.Traffic),
		"pedestrians": len(sim.Pedestrians),
	}).Info("City generated")

	return sim, nil
}
