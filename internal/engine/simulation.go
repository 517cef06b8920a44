package engine

import (
	"vicecity-server/internal/domain"
	"vicecity-server/internal/systems"
	"vicecity-server/pkg/city"
)

// Simulation - весь мир одной сессии. Не потокобезопасна: шаги вызываются
// последовательно из одного цикла (GameService держит мьютекс).
type Simulation struct {
	Config Config
	Layout *city.Layout
	Field  *systems.CollisionField

	Agent       *domain.Agent
	Parked      []*domain.Vehicle // Машины игрока, без автопилота
	Traffic     []*domain.Vehicle // Машины с автопилотом
	Pedestrians []*domain.Pedestrian
	Camera      *systems.Camera

	// Контроллеры по индексам Traffic / Pedestrians
	autopilots []*systems.AutonomousDriver
	walkers    []*systems.PedestrianController

	Frame   uint64
	Elapsed float64 // Миллисекунды симулированного времени
}

// StepReport - что произошло за шаг (для метрик и логов)
type StepReport struct {
	Frame           uint64
	Possession      systems.PossessionChange
	Vehicle         domain.EntityID // Машина, в которую сели или из которой вышли
	Attack          bool            // Импульс атаки был получен
	StuckRecoveries int
	Blocked         bool // Активное тело упёрлось в препятствие
}

// NewSimulation строит мир по конфигу
func NewSimulation(cfg Config) (*Simulation, error) {
	return buildWorld(cfg)
}

// Step продвигает мир на dt миллисекунд. Порядок фиксирован:
// посадка/высадка, активное тело, пустые машины, трафик, пешеходы, камера.
func (s *Simulation) Step(dt float64, in domain.Input) StepReport {
	in = in.Normalized()
	s.Frame++
	s.Elapsed += dt

	report := StepReport{Frame: s.Frame, Attack: in.Attack}
	ctx := systems.StepContext{
		Input:     in,
		DeltaTime: dt,
		Field:     s.Field,
		Width:     s.Field.Width(),
		Height:    s.Field.Height(),
	}

	// 1. Посадка / высадка
	if in.EnterExit {
		change, v := systems.ToggleVehicle(s.Agent, s.Vehicles())
		report.Possession = change
		if v != nil {
			report.Vehicle = v.ID
		}
	}

	// 2. Активное тело
	if s.Agent.InVehicle() {
		res := systems.PlayerControl{}.Drive(s.Agent.Vehicle, ctx)
		s.Agent.MirrorVehicle()
		report.Blocked = res.Move.Blocked()
	} else {
		report.Blocked = systems.WalkAgent(s.Agent, in, s.Field).Blocked()
	}

	// 3. Пустые машины игрока катятся по инерции
	for _, v := range s.Parked {
		if !v.Occupied {
			systems.IdleControl{}.Drive(v, ctx)
		}
	}

	// 4. Трафик. Машина с игроком уже обработана в п.2.
	for i, v := range s.Traffic {
		if v.Occupied {
			continue
		}
		if res := s.autopilots[i].Drive(v, ctx); res.Recovered {
			report.StuckRecoveries++
		}
	}

	// 5. Пешеходы
	for i, p := range s.Pedestrians {
		s.walkers[i].Update(p, dt, s.Field)
	}

	// 6. Камера
	s.Camera.Follow(s.Agent.ActiveBody())

	return report
}

// Vehicles - все машины мира в порядке перебора при посадке
func (s *Simulation) Vehicles() []*domain.Vehicle {
	out := make([]*domain.Vehicle, 0, len(s.Parked)+len(s.Traffic))
	out = append(out, s.Parked...)
	return append(out, s.Traffic...)
}
