package api

import (
	"encoding/json"
)

// Типы сообщений сервера
const (
	MessageInit   = "INIT"
	MessageUpdate = "UPDATE"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Snapshot - кадр симуляции, отправляемый клиенту после каждого шага.
// Одна структура сериализуется и в JSON, и в msgpack (по json-тегам).
type Snapshot struct {
	// Type: INIT для первого кадра сессии (с картой), UPDATE для остальных.
	Type string `json:"type"`

	// Frame номер просчитанного кадра, растёт монотонно.
	Frame uint64 `json:"frame"`

	// Session ID сессии клиента (только в INIT).
	Session string `json:"session,omitempty"`

	Camera CameraView  `json:"camera"`
	Agent  AgentStatus `json:"agent"`

	// Entities все машины и пешеходы мира.
	Entities []EntityView `json:"entities"`

	// World статическая карта. Отправляется один раз в INIT.
	World *WorldView `json:"world,omitempty"`
}

// CameraView - центр камеры и левый верхний угол видимой области
type CameraView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// AgentStatus - то, что нужно HUD: где игрок, за рулём ли он, скорость.
type AgentStatus struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`

	Driving     bool   `json:"driving"`
	VehicleID   string `json:"vehicleId,omitempty"`
	VehicleKind string `json:"vehicleKind,omitempty"`

	// Speedometer - |speed| * 10, округлённый
	Speedometer int `json:"speedometer"`

	// CanEnter true, если рядом есть свободная машина
	CanEnter bool `json:"canEnter"`
}

// EntityView - DTO движущейся сущности для рендера
type EntityView struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"` // VEHICLE, TRAFFIC, PEDESTRIAN
	Kind  string  `json:"kind"` // sedan, taxi, worker...
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	Speed float64 `json:"speed"`

	Width  float64 `json:"w"`
	Height float64 `json:"h"`

	// Controlled true для машины, которой сейчас управляет игрок
	Controlled bool `json:"controlled,omitempty"`
	Occupied   bool `json:"occupied,omitempty"`

	// State состояние пешехода (WALKING / IDLE)
	State string `json:"state,omitempty"`

	// InView true, если сущность попадает в обзор камеры (с запасом)
	InView bool `json:"inView"`
}

// RectView - прямоугольник карты
type RectView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// WorldView - статическая карта города
type WorldView struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	TileSize  float64    `json:"tileSize"`
	Seed      int64      `json:"seed"`
	Roads     []RectView `json:"roads"`
	Buildings []RectView `json:"buildings"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: INIT, INPUT, ENTER_EXIT, ATTACK.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// InputPayload - зажатое состояние управления (INPUT).
// Импульсы можно прислать здесь же или отдельными командами ENTER_EXIT / ATTACK.
type InputPayload struct {
	Dx        float64 `json:"dx"`
	Dy        float64 `json:"dy"`
	Sprint    bool    `json:"sprint,omitempty"`
	EnterExit bool    `json:"enterExit,omitempty"`
	Attack    bool    `json:"attack,omitempty"`
}
