package engine

import (
	"errors"
	"fmt"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrWorldMismatch - реплей записан на городе с другими параметрами
var ErrWorldMismatch = errors.New("replay was recorded with a different world config")

// Playback заново просчитывает записанную сессию и возвращает мир на последнем кадре.
// Мир строится из Seed записи, шаги идут с dt записи, поэтому результат совпадает с оригиналом.
func Playback(cfg Config, session domain.ReplaySession) (*Simulation, error) {
	if session.World != 0 && session.World != cfg.WorldHash() {
		return nil, fmt.Errorf("%w: replay %016x, config %016x", ErrWorldMismatch, session.World, cfg.WorldHash())
	}

	cfg.Seed = session.Seed
	if session.TickRate > 0 {
		cfg.TickRate = session.TickRate
	}

	sim, err := NewSimulation(cfg)
	if err != nil {
		return nil, fmt.Errorf("rebuild world: %w", err)
	}

	dt := cfg.DeltaMillis()
	var held domain.Input
	next := 0

	for frame := 1; frame <= session.Frames; frame++ {
		in := held
		if next < len(session.Inputs) && session.Inputs[next].Frame == frame {
			in = session.Inputs[next].Input
			next++
		}

		sim.Step(dt, in)
		held = in.Held()
	}

	if next != len(session.Inputs) {
		return sim, fmt.Errorf("replay has %d inputs past frame %d", len(session.Inputs)-next, session.Frames)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "playback",
		"session":   session.ID,
		"frames":    session.Frames,
		"inputs":    len(session.Inputs),
	}).Info("Replay finished")

	return sim, nil
}
