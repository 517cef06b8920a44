package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vicecity-server/internal/engine"

	"github.com/spf13/viper"
)

// EnvPrefix - префикс переменных окружения: VICECITY_SERVER_ADDR, VICECITY_ENGINE_SEED...
const EnvPrefix = "VICECITY"

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	Debug             bool          `mapstructure:"debug"` // /debug/* эндпоинты
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Settings - всё, что нужно cmd/server для запуска
type Settings struct {
	Engine engine.Config `mapstructure:"engine"`
	Server ServerConfig  `mapstructure:"server"`
	Log    LogConfig     `mapstructure:"log"`
	Replay ReplayConfig  `mapstructure:"replay"`
}

// Load собирает настройки слоями: дефолты -> файл (если задан) -> окружение.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	e := engine.NewConfig()

	v.SetDefault("engine.seed", e.Seed)
	v.SetDefault("engine.world_width", e.WorldWidth)
	v.SetDefault("engine.world_height", e.WorldHeight)
	v.SetDefault("engine.tile_size", e.TileSize)
	v.SetDefault("engine.building_density", e.BuildingDensity)
	v.SetDefault("engine.parking_spots", e.ParkingSpots)
	v.SetDefault("engine.traffic", e.TrafficCount)
	v.SetDefault("engine.pedestrians", e.PedestrianCount)
	v.SetDefault("engine.pedestrian_margin", e.PedestrianMargin)
	v.SetDefault("engine.spawn_attempts", e.SpawnAttempts)
	v.SetDefault("engine.tick_rate", e.TickRate)
	v.SetDefault("engine.viewport_width", e.ViewportWidth)
	v.SetDefault("engine.viewport_height", e.ViewportHeight)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", "5s")
	v.SetDefault("server.debug", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.dir", "./replays")
}

func (s Settings) Validate() error {
	errs := []error{s.Engine.Validate()}
	if s.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if s.Replay.Enabled && s.Replay.Dir == "" {
		errs = append(errs, errors.New("replay.dir is empty while replays are enabled"))
	}
	return errors.Join(errs...)
}
