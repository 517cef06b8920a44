package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"vicecity-server/pkg/city"

	"github.com/cespare/xxhash/v2"
)

// Spot - фиксированная точка на карте (парковка)
type Spot struct {
	X float64 `mapstructure:"x" json:"x"`
	Y float64 `mapstructure:"y" json:"y"`
}

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - мастер-зерно. От него зависят карта, спавн и все броски ИИ.
	Seed int64 `mapstructure:"seed"`

	WorldWidth      float64 `mapstructure:"world_width"`
	WorldHeight     float64 `mapstructure:"world_height"`
	TileSize        float64 `mapstructure:"tile_size"`
	BuildingDensity float64 `mapstructure:"building_density"`

	ParkingSpots     []Spot  `mapstructure:"parking_spots"`
	TrafficCount     int     `mapstructure:"traffic"`
	PedestrianCount  int     `mapstructure:"pedestrians"`
	PedestrianMargin float64 `mapstructure:"pedestrian_margin"` // Пешеходы не спавнятся ближе к краю
	SpawnAttempts    int     `mapstructure:"spawn_attempts"`    // Попыток найти свободную точку на сущность

	// TickRate - шагов симуляции в секунду. dt каждого шага = 1000 / TickRate мс.
	TickRate int `mapstructure:"tick_rate"`

	ViewportWidth  float64 `mapstructure:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height"`
}

// DefaultParkingSpots - стоянки машин игрока
var DefaultParkingSpots = []Spot{
	{400, 400}, {800, 600}, {1200, 800}, {1600, 400}, {600, 1200},
	{1000, 1000}, {2400, 1200}, {3000, 2000}, {2000, 3200}, {3400, 2800},
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	spots := make([]Spot, len(DefaultParkingSpots))
	copy(spots, DefaultParkingSpots)

	return Config{
		Seed:             time.Now().UnixNano(),
		WorldWidth:       4000,
		WorldHeight:      4000,
		TileSize:         city.DefaultTileSize,
		BuildingDensity:  city.DefaultDensity,
		ParkingSpots:     spots,
		TrafficCount:     15,
		PedestrianCount:  30,
		PedestrianMargin: 200,
		SpawnAttempts:    1000,
		TickRate:         60,
		ViewportWidth:    1280,
		ViewportHeight:   720,
	}
}

// DeltaMillis - длительность одного шага в миллисекундах
func (c Config) DeltaMillis() float64 {
	return 1000 / float64(c.TickRate)
}

// FrameDuration - период тикера
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Validate проверяет значения, без которых мир не построить
func (c Config) Validate() error {
	var errs []error
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", c.WorldWidth, c.WorldHeight))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size %v must be positive", c.TileSize))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate %d must be positive", c.TickRate))
	}
	if c.TrafficCount < 0 || c.PedestrianCount < 0 {
		errs = append(errs, errors.New("entity counts must not be negative"))
	}
	if c.SpawnAttempts <= 0 {
		errs = append(errs, fmt.Errorf("spawn attempts %d must be positive", c.SpawnAttempts))
	}
	if 2*c.PedestrianMargin >= c.WorldWidth || 2*c.PedestrianMargin >= c.WorldHeight {
		errs = append(errs, fmt.Errorf("pedestrian margin %v leaves no room", c.PedestrianMargin))
	}
	return errors.Join(errs...)
}

// WorldHash - отпечаток параметров, от которых зависит мир (кроме сида).
// Пишется в реплей: проигрывание с другим городом дало бы другой результат.
// Сид, частота и вьюпорт сюда не входят: первые два хранятся в реплее отдельно,
// вьюпорт влияет только на выдачу клиенту.
func (c Config) WorldHash() uint64 {
	buf := make([]byte, 0, 128)
	f := func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }
	n := func(v int) { buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(v))) }

	f(c.WorldWidth)
	f(c.WorldHeight)
	f(c.TileSize)
	f(c.BuildingDensity)
	n(c.TrafficCount)
	n(c.PedestrianCount)
	f(c.PedestrianMargin)
	n(c.SpawnAttempts)
	n(len(c.ParkingSpots))
	for _, p := range c.ParkingSpots {
		f(p.X)
		f(p.Y)
	}
	return xxhash.Sum64(buf)
}
