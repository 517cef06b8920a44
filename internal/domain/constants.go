package domain

// Типы сущностей для рендера
const (
	EntityTypePlayer     = "PLAYER"
	EntityTypeVehicle    = "VEHICLE"
	EntityTypeTraffic    = "TRAFFIC"
	EntityTypePedestrian = "PEDESTRIAN"
)

// Игрок пешком
const (
	AgentSize        = 20
	AgentWalkSpeed   = 3
	AgentSprintSpeed = 5
)

// Пешеходы
const (
	PedestrianSize = 15
)

// Посадка/высадка
const (
	InteractionRadius = 60.0 // Максимальная дистанция до машины для посадки
	ExitOffset        = 50.0 // Смещение агента вдоль курса машины при высадке
)
