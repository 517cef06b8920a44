package engine

import (
	"math"

	"vicecity-server/internal/domain"
	"vicecity-server/internal/systems"
	"vicecity-server/pkg/api"
)

// viewMargin - запас вокруг экрана, в котором сущность ещё считается видимой
const viewMargin = 100.0

// BuildSnapshot создает "снимок" мира для клиента.
// Только чтение: состояние симуляции не меняется.
func (s *Simulation) BuildSnapshot(msgType string) api.Snapshot {
	snap := api.Snapshot{
		Type:     msgType,
		Frame:    s.Frame,
		Camera:   s.cameraView(),
		Agent:    s.AgentStatus(),
		Entities: make([]api.EntityView, 0, len(s.Parked)+len(s.Traffic)+len(s.Pedestrians)),
	}

	for _, v := range s.Parked {
		snap.Entities = append(snap.Entities, s.vehicleView(v, domain.EntityTypeVehicle))
	}
	for _, v := range s.Traffic {
		snap.Entities = append(snap.Entities, s.vehicleView(v, domain.EntityTypeTraffic))
	}
	for _, p := range s.Pedestrians {
		snap.Entities = append(snap.Entities, api.EntityView{
			ID:     p.ID.String(),
			Type:   domain.EntityTypePedestrian,
			Kind:   string(p.Kind),
			X:      p.X,
			Y:      p.Y,
			Angle:  p.Angle,
			Speed:  p.Speed,
			Width:  p.Width,
			Height: p.Height,
			State:  p.State.String(),
			InView: s.Camera.InView(p.X, p.Y, viewMargin),
		})
	}

	if msgType == api.MessageInit {
		snap.World = s.WorldView()
	}
	return snap
}

// AgentStatus - данные для HUD
func (s *Simulation) AgentStatus() api.AgentStatus {
	a := s.Agent
	st := api.AgentStatus{
		ID:    a.ID.String(),
		X:     a.X,
		Y:     a.Y,
		Angle: a.Angle,
	}

	if a.InVehicle() {
		st.Driving = true
		st.VehicleID = a.Vehicle.ID.String()
		st.VehicleKind = string(a.Vehicle.Kind)
		st.Speedometer = int(math.Round(math.Abs(a.Vehicle.Speed) * 10))
		return st
	}

	// Пешком спидометр молчит, скорость показывает только машина
	st.CanEnter = systems.NearestVehicle(a, s.Vehicles()) != nil
	return st
}

// WorldView - статическая карта для рендера и миникарты
func (s *Simulation) WorldView() *api.WorldView {
	w := &api.WorldView{
		Width:     s.Field.Width(),
		Height:    s.Field.Height(),
		TileSize:  s.Layout.TileSize,
		Seed:      s.Config.Seed,
		Roads:     make([]api.RectView, 0, len(s.Layout.Roads)),
		Buildings: make([]api.RectView, 0, len(s.Layout.Buildings)),
	}
	for _, r := range s.Layout.Roads {
		w.Roads = append(w.Roads, toRectView(r))
	}
	for _, b := range s.Field.Obstacles() {
		w.Buildings = append(w.Buildings, toRectView(b))
	}
	return w
}

func (s *Simulation) cameraView() api.CameraView {
	ox, oy := s.Camera.Origin()
	return api.CameraView{
		X:       s.Camera.X,
		Y:       s.Camera.Y,
		OriginX: ox,
		OriginY: oy,
		Width:   s.Camera.Width,
		Height:  s.Camera.Height,
	}
}

func (s *Simulation) vehicleView(v *domain.Vehicle, entityType string) api.EntityView {
	return api.EntityView{
		ID:         v.ID.String(),
		Type:       entityType,
		Kind:       string(v.Kind),
		X:          v.X,
		Y:          v.Y,
		Angle:      v.Angle,
		Speed:      v.Speed,
		Width:      v.Width,
		Height:     v.Height,
		Occupied:   v.Occupied,
		Controlled: s.Agent.Vehicle == v,
		InView:     s.Camera.InView(v.X, v.Y, viewMargin),
	}
}

func toRectView(r domain.Rect) api.RectView {
	return api.RectView{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
