package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vicecity-server/internal/domain"
	"vicecity-server/internal/engine/handlers"
	"vicecity-server/internal/engine/handlers/actions"
	"vicecity-server/internal/network"
	"vicecity-server/pkg/api"
	"vicecity-server/pkg/logger"
	"vicecity-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// GameService владеет одной симуляцией и гоняет её с фиксированным шагом.
// Ввод приходит из любых горутин через InputLatch, кадры уходят через Hub.
type GameService struct {
	cfg Config

	mu     sync.RWMutex
	sim    *Simulation
	replay *domain.ReplaySession

	// Сессии, которым ещё не отправлен INIT
	pendingInit map[string]bool

	latch   *InputLatch
	Hub     *network.Broadcaster
	metrics *Metrics

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

func NewService(cfg Config) (*GameService, error) {
	sim, err := NewSimulation(cfg)
	if err != nil {
		return nil, err
	}

	metrics, err := NewMetrics()
	if err != nil {
		return nil, err
	}

	s := &GameService{
		cfg: cfg,
		sim: sim,
		replay: &domain.ReplaySession{
			ID:        utils.GenerateID(),
			Seed:      cfg.Seed,
			World:     cfg.WorldHash(),
			Timestamp: time.Now().Unix(),
			TickRate:  cfg.TickRate,
			Inputs:    make([]domain.ReplayInput, 0),
		},
		pendingInit: make(map[string]bool),
		latch:       &InputLatch{},
		Hub:         network.NewBroadcaster(),
		metrics:     metrics,
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		log:         logger.WithComponent("game_service"),
	}

	if err := metrics.RegisterSubscriberGauge(s.Hub.SubscriberCount); err != nil {
		return nil, err
	}

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionInput] = handlers.WithPayload(actions.HandleInput)
	s.handlers[domain.ActionEnterExit] = handlers.WithEmptyPayload(actions.HandleEnterExit)
	s.handlers[domain.ActionAttack] = handlers.WithEmptyPayload(actions.HandleAttack)
}

// Join подписывает сессию на кадры. Первым кадром она получит INIT с картой.
func (s *GameService) Join(sessionID string) chan api.Snapshot {
	// Регистрация и pendingInit под одним локом: Tick видит либо оба, либо ничего,
	// поэтому первым кадром в канале всегда будет INIT
	s.mu.Lock()
	ch := s.Hub.Register(sessionID)
	s.pendingInit[sessionID] = true
	s.mu.Unlock()

	s.log.WithField("session", sessionID).Info("Session joined")
	return ch
}

// Leave отписывает сессию. Когда уходит последний клиент, все клавиши отпускаются.
func (s *GameService) Leave(sessionID string) {
	s.Hub.Unregister(sessionID)

	s.mu.Lock()
	delete(s.pendingInit, sessionID)
	s.mu.Unlock()

	if s.Hub.SubscriberCount() == 0 {
		s.latch.Reset()
	}
	s.log.WithField("session", sessionID).Info("Session left")
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот)
func (s *GameService) ProcessCommand(sessionID string, cmd api.ClientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actionType := domain.ParseAction(cmd.Action)
	handler, ok := s.handlers[actionType]
	if !ok {
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	res, err := handler(handlers.Context{Session: sessionID, Input: s.latch}, cmd.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", actionType, err)
	}

	if res.SendWorld {
		s.mu.Lock()
		s.pendingInit[sessionID] = true
		s.mu.Unlock()
	}
	return nil
}

// SubmitInput - прямой ввод в обход протокола (тесты, встроенные клиенты)
func (s *GameService) SubmitInput(in domain.Input) {
	s.latch.Submit(in)
}

// Run крутит симуляцию до отмены контекста
func (s *GameService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.FrameDuration())
	defer ticker.Stop()

	s.log.WithFields(logrus.Fields{
		"tick_rate": s.cfg.TickRate,
		"seed":      s.cfg.Seed,
	}).Info("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			s.mu.RLock()
			frames := s.sim.Frame
			s.mu.RUnlock()
			s.log.WithField("frames", frames).Info("Simulation loop stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick - ровно один шаг: ввод, симуляция, запись, рассылка.
func (s *GameService) Tick(ctx context.Context) StepReport {
	in := s.latch.Consume()

	s.mu.Lock()
	start := time.Now()

	frame := int(s.sim.Frame) + 1
	s.replay.Record(frame, in)
	report := s.sim.Step(s.cfg.DeltaMillis(), in)
	s.replay.Frames = frame

	update := s.sim.BuildSnapshot(api.MessageUpdate)

	var initFor []string
	var initSnap api.Snapshot
	if len(s.pendingInit) > 0 {
		initSnap = s.sim.BuildSnapshot(api.MessageInit)
		for id := range s.pendingInit {
			initFor = append(initFor, id)
		}
		clear(s.pendingInit)
	}
	elapsed := time.Since(start)
	s.mu.Unlock()

	s.metrics.Observe(ctx, report, elapsed)

	if report.Attack {
		s.log.WithField("frame", report.Frame).Debug("Attack pulse consumed")
	}

	// Сначала INIT новым клиентам, затем общий кадр
	for _, id := range initFor {
		snap := initSnap
		snap.Session = id
		s.Hub.SendTo(id, snap)
	}
	s.Hub.Broadcast(update)

	return report
}

// Snapshot - текущий кадр (для HTTP отладки)
func (s *GameService) Snapshot() api.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sim.BuildSnapshot(api.MessageUpdate)
}

// World - статическая карта
func (s *GameService) World() *api.WorldView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sim.WorldView()
}

// Replay возвращает копию записи сессии
func (s *GameService) Replay() domain.ReplaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := *s.replay
	out.Inputs = make([]domain.ReplayInput, len(s.replay.Inputs))
	copy(out.Inputs, s.replay.Inputs)
	return out
}

// Config возвращает параметры, с которыми построен мир
func (s *GameService) Config() Config {
	return s.cfg
}
