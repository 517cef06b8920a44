package domain

// EntityID - строковый идентификатор сущности ("car_3", "ai_7", "ped_12").
type EntityID string

func (id EntityID) String() string { return string(id) }

// Agent - игрок. Пешком двигается сам, в машине повторяет её позицию.
type Agent struct {
	ID EntityID `json:"id"`
	Body

	WalkSpeed   float64 `json:"-"`
	SprintSpeed float64 `json:"-"`

	// Vehicle - невладеющая ссылка на машину, которой управляет агент.
	// Машина хранит только флаг Occupied, обратной ссылки нет.
	Vehicle *Vehicle `json:"-"`
}

// InVehicle true, если агент сейчас управляет машиной
func (a *Agent) InVehicle() bool {
	return a.Vehicle != nil
}

// ActiveBody возвращает тело, которое сейчас управляется вводом игрока.
func (a *Agent) ActiveBody() *Body {
	if a.Vehicle != nil {
		return &a.Vehicle.Body
	}
	return &a.Body
}

// MirrorVehicle копирует позицию и курс машины в агента
func (a *Agent) MirrorVehicle() {
	if a.Vehicle == nil {
		return
	}
	a.X = a.Vehicle.X
	a.Y = a.Vehicle.Y
	a.Angle = a.Vehicle.Angle
}

// Vehicle - машина. Driver == nil для припаркованных машин игрока.
type Vehicle struct {
	ID   EntityID    `json:"id"`
	Kind VehicleKind `json:"kind"`
	Body

	Occupied bool `json:"occupied"`

	// Driver - транзиентное состояние автопилота (только для AI-машин)
	Driver *DriverState `json:"-"`
}

// IsAutonomous true для машин с автопилотом
func (v *Vehicle) IsAutonomous() bool {
	return v.Driver != nil
}

// DriverState - таймеры и цели автопилота. Все таймеры в миллисекундах.
type DriverState struct {
	TargetSpeed  float64 `json:"targetSpeed"`
	TurnTimer    float64 `json:"turnTimer"`
	TurnDuration float64 `json:"turnDuration"`
	StuckTimer   float64 `json:"stuckTimer"`
	LastX        float64 `json:"lastX"`
	LastY        float64 `json:"lastY"`
}

// PedestrianState - состояние конечного автомата пешехода
type PedestrianState uint8

const (
	PedestrianWalking PedestrianState = iota
	PedestrianIdle
)

func (s PedestrianState) String() string {
	if s == PedestrianIdle {
		return "IDLE"
	}
	return "WALKING"
}

// Pedestrian - пешеход. Скорость постоянная, без инерции.
type Pedestrian struct {
	ID   EntityID       `json:"id"`
	Kind PedestrianKind `json:"kind"`
	Body

	State          PedestrianState `json:"state"`
	TargetAngle    float64         `json:"targetAngle"`
	WalkTimer      float64         `json:"walkTimer"`
	WalkDuration   float64         `json:"walkDuration"`
	IdleTimer      float64         `json:"idleTimer"`
	IdleDuration   float64         `json:"idleDuration"`
	DirectionTimer float64         `json:"directionTimer"`
}
