package engine

import (
	"context"
	"encoding/json"
	"testing"

	"vicecity-server/internal/domain"
	"vicecity-server/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg Config) *GameService {
	t.Helper()
	s, err := NewService(cfg)
	require.NoError(t, err)
	return s
}

func TestServiceJoinGetsInitThenUpdates(t *testing.T) {
	s := newTestService(t, testConfig())
	ch := s.Join("client-1")
	defer s.Leave("client-1")

	s.Tick(context.Background())

	first := <-ch
	assert.Equal(t, api.MessageInit, first.Type)
	assert.Equal(t, "client-1", first.Session)
	require.NotNil(t, first.World)
	assert.Equal(t, 1200.0, first.World.Width)
	assert.NotEmpty(t, first.World.Buildings)

	second := <-ch
	assert.Equal(t, api.MessageUpdate, second.Type)
	assert.Nil(t, second.World)
	assert.Equal(t, uint64(1), second.Frame)

	s.Tick(context.Background())
	third := <-ch
	assert.Equal(t, api.MessageUpdate, third.Type)
	assert.Equal(t, uint64(2), third.Frame)
}

func TestServiceProcessCommand(t *testing.T) {
	s := newTestService(t, garageConfig())

	payload, _ := json.Marshal(api.InputPayload{Dx: 1})
	require.NoError(t, s.ProcessCommand("c", api.ClientCommand{Action: "INPUT", Payload: payload}))

	s.Tick(context.Background())
	assert.InDelta(t, 603.0, s.Snapshot().Agent.X, 1e-9)

	// Клавиша остаётся зажатой
	s.Tick(context.Background())
	assert.InDelta(t, 606.0, s.Snapshot().Agent.X, 1e-9)

	require.NoError(t, s.ProcessCommand("c", api.ClientCommand{Action: "input", Payload: json.RawMessage(`{"dx":0,"dy":0}`)}))
	s.Tick(context.Background())
	assert.InDelta(t, 606.0, s.Snapshot().Agent.X, 1e-9)
}

func TestServiceProcessCommandErrors(t *testing.T) {
	s := newTestService(t, garageConfig())

	assert.Error(t, s.ProcessCommand("c", api.ClientCommand{}))
	assert.Error(t, s.ProcessCommand("c", api.ClientCommand{Action: "FLY"}))
	assert.Error(t, s.ProcessCommand("c", api.ClientCommand{Action: "INPUT", Payload: json.RawMessage(`{"dx":9}`)}))
}

func TestServiceEnterExitCommand(t *testing.T) {
	s := newTestService(t, garageConfig())

	require.NoError(t, s.ProcessCommand("c", api.ClientCommand{Action: "ENTER_EXIT"}))
	report := s.Tick(context.Background())
	assert.Equal(t, domain.EntityID("car_0"), report.Vehicle)

	status := s.Snapshot().Agent
	assert.True(t, status.Driving)
	assert.Equal(t, "car_0", status.VehicleID)

	// Импульс отработал один раз
	s.Tick(context.Background())
	assert.True(t, s.Snapshot().Agent.Driving)
}

func TestServiceInitOnRequest(t *testing.T) {
	s := newTestService(t, garageConfig())
	ch := s.Join("c")
	s.Tick(context.Background())
	<-ch
	<-ch

	require.NoError(t, s.ProcessCommand("c", api.ClientCommand{Action: "INIT"}))
	s.Tick(context.Background())
	assert.Equal(t, api.MessageInit, (<-ch).Type)
}

func TestServiceReplayPlaybackMatches(t *testing.T) {
	cfg := testConfig()
	s := newTestService(t, cfg)
	ctx := context.Background()

	script := []struct {
		frames int
		in     domain.Input
	}{
		{10, domain.Input{}},
		{40, domain.Input{Dx: 1}},
		{1, domain.Input{Dx: 1, Sprint: true, Attack: true}},
		{30, domain.Input{Dy: 1, Sprint: true}},
		{20, domain.Input{Dx: -0.5, Dy: 0.5}},
	}
	for _, step := range script {
		s.SubmitInput(step.in)
		for i := 0; i < step.frames; i++ {
			s.Tick(ctx)
		}
	}

	rec := s.Replay()
	assert.Equal(t, 101, rec.Frames)
	assert.Equal(t, cfg.Seed, rec.Seed)
	assert.NotEmpty(t, rec.ID)
	// Пустой старт не пишется, дальше по записи на каждое изменение
	require.Len(t, rec.Inputs, 4)
	assert.Equal(t, 11, rec.Inputs[0].Frame)
	assert.Equal(t, 51, rec.Inputs[1].Frame)
	assert.True(t, rec.Inputs[1].Input.Attack)
	assert.Equal(t, 52, rec.Inputs[2].Frame)

	replayed, err := Playback(cfg, rec)
	require.NoError(t, err)

	assert.Equal(t, s.sim.Frame, replayed.Frame)
	assert.Equal(t, s.sim.Agent.Body, replayed.Agent.Body)
	for i := range s.sim.Traffic {
		assert.Equal(t, s.sim.Traffic[i].Body, replayed.Traffic[i].Body)
	}
	for i := range s.sim.Pedestrians {
		assert.Equal(t, *s.sim.Pedestrians[i], *replayed.Pedestrians[i])
	}
}

func TestPlaybackRejectsOtherWorld(t *testing.T) {
	cfg := garageConfig()
	s := newTestService(t, cfg)
	s.Tick(context.Background())

	rec := s.Replay()
	assert.Equal(t, cfg.WorldHash(), rec.World)

	other := cfg
	other.TrafficCount = 2
	_, err := Playback(other, rec)
	assert.ErrorIs(t, err, ErrWorldMismatch)

	// Сид и частота берутся из записи и на отпечаток не влияют
	same := cfg
	same.Seed, same.TickRate = 1, 30
	_, err = Playback(same, rec)
	assert.NoError(t, err)
}

func TestPlaybackRejectsTrailingInputs(t *testing.T) {
	rec := domain.ReplaySession{
		Seed:   1,
		Frames: 2,
		Inputs: []domain.ReplayInput{{Frame: 5, Input: domain.Input{Dx: 1}}},
	}
	_, err := Playback(garageConfig(), rec)
	assert.Error(t, err)
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	cfg := garageConfig()
	cfg.TickRate = 1000
	s := newTestService(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Join("c")

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-ch // Хотя бы один кадр
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}
