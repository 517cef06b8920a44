package server

import (
	"encoding/json"
	"net/http"

	"vicecity-server/internal/engine"
	"vicecity-server/pkg/api"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", h.handleWorld)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/replay", h.handleReplay)
}

// /debug/world - статическая карта (дороги, здания)
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.World())
}

// /debug/entities?type=PEDESTRIAN - текущий кадр: игрок и сущности (опционально по типу)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	snap := h.Service.Snapshot()

	entities := snap.Entities
	if typ := r.URL.Query().Get("type"); typ != "" {
		entities = make([]api.EntityView, 0, len(snap.Entities))
		for _, e := range snap.Entities {
			if e.Type == typ {
				entities = append(entities, e)
			}
		}
	}

	writeJSON(w, struct {
		Frame    uint64           `json:"frame"`
		Agent    api.AgentStatus  `json:"agent"`
		Entities []api.EntityView `json:"entities"`
	}{snap.Frame, snap.Agent, entities})
}

// /debug/replay - сводка текущей записи
func (h *DebugHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	rep := h.Service.Replay()
	writeJSON(w, map[string]any{
		"id":       rep.ID,
		"seed":     rep.Seed,
		"tickRate": rep.TickRate,
		"frames":   rep.Frames,
		"inputs":   len(rep.Inputs),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
