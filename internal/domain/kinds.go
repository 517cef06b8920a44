package domain

// VehicleKind - тип машины. Определяет ходовые характеристики.
type VehicleKind string

const (
	VehicleSedan  VehicleKind = "sedan"
	VehicleSports VehicleKind = "sports"
	VehicleTruck  VehicleKind = "truck"
	VehicleTaxi   VehicleKind = "taxi"
)

// VehicleKinds - порядок важен: по нему выбирается случайный тип при спавне.
var VehicleKinds = []VehicleKind{VehicleSedan, VehicleSports, VehicleTruck, VehicleTaxi}

// PedestrianKind - презентационный тег пешехода, ядром не интерпретируется.
type PedestrianKind string

const (
	PedestrianCommon     PedestrianKind = "pedestrian"
	PedestrianShopkeeper PedestrianKind = "shopkeeper"
	PedestrianWorker     PedestrianKind = "worker"
)

var PedestrianKinds = []PedestrianKind{PedestrianCommon, PedestrianShopkeeper, PedestrianWorker}

// VehicleSpec - ходовые константы типа машины
type VehicleSpec struct {
	Width, Height float64
	MaxSpeed      float64
	Acceleration  float64
	Deceleration  float64
	TurnSpeed     float64
	Drag          float64
}

var vehicleSpecs = map[VehicleKind]VehicleSpec{
	VehicleSedan:  {Width: 40, Height: 70, MaxSpeed: 8, Acceleration: 0.3, Deceleration: 0.15, TurnSpeed: 0.05, Drag: 0.97},
	VehicleSports: {Width: 40, Height: 70, MaxSpeed: 10, Acceleration: 0.4, Deceleration: 0.15, TurnSpeed: 0.055, Drag: 0.975},
	VehicleTruck:  {Width: 40, Height: 70, MaxSpeed: 6, Acceleration: 0.2, Deceleration: 0.12, TurnSpeed: 0.035, Drag: 0.96},
	VehicleTaxi:   {Width: 40, Height: 70, MaxSpeed: 8, Acceleration: 0.3, Deceleration: 0.15, TurnSpeed: 0.05, Drag: 0.97},
}

// SpecFor возвращает характеристики типа. Неизвестный тип = седан.
func SpecFor(kind VehicleKind) VehicleSpec {
	if spec, ok := vehicleSpecs[kind]; ok {
		return spec
	}
	return vehicleSpecs[VehicleSedan]
}

// NewVehicle создает стоящую машину заданного типа
func NewVehicle(id EntityID, kind VehicleKind, x, y, angle float64) *Vehicle {
	spec := SpecFor(kind)
	return &Vehicle{
		ID:   id,
		Kind: kind,
		Body: Body{
			X: x, Y: y, Angle: angle,
			Width: spec.Width, Height: spec.Height,
			MaxSpeed:     spec.MaxSpeed,
			Acceleration: spec.Acceleration,
			Deceleration: spec.Deceleration,
			TurnSpeed:    spec.TurnSpeed,
			Drag:         spec.Drag,
		},
	}
}

// NewAgent создает игрока пешком
func NewAgent(id EntityID, x, y float64) *Agent {
	return &Agent{
		ID: id,
		Body: Body{
			X: x, Y: y,
			Width: AgentSize, Height: AgentSize,
			MaxSpeed: AgentSprintSpeed,
		},
		WalkSpeed:   AgentWalkSpeed,
		SprintSpeed: AgentSprintSpeed,
	}
}
