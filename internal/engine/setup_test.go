package engine

import (
	"os"
	"testing"

	"vicecity-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Инициализируем глобальный логгер до запуска тестов
	logger.Init()

	os.Exit(m.Run())
}

// testConfig - маленький детерминированный город
func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.WorldWidth, cfg.WorldHeight = 1200, 1200
	cfg.ParkingSpots = nil
	cfg.TrafficCount = 3
	cfg.PedestrianCount = 5
	cfg.ViewportWidth, cfg.ViewportHeight = 800, 600
	return cfg
}

// garageConfig - пустой город (без зданий и трафика) с одной машиной рядом с игроком
func garageConfig() Config {
	cfg := testConfig()
	cfg.BuildingDensity = 0
	cfg.TrafficCount = 0
	cfg.PedestrianCount = 0
	cfg.ParkingSpots = []Spot{{X: 620, Y: 600}}
	return cfg
}
