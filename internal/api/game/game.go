package game

import (
	"net/http"

	dto "judol_backend/internal/api/dto/game"
	"judol_backend/internal/converter"
	"judol_backend/internal/service"
	"judol_backend/pkg/req"
	"judol_backend/pkg/resp"
)

type HandlerDeps struct {
	GameServ     service.GameService
	SettingsServ service.SettingsService
}

type Handler struct {
	gameServ     service.GameService
	settingsServ service.SettingsService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		gameServ:     deps.GameServ,
		settingsServ: deps.SettingsServ,
	}
}

// GetSettings отдает текущий оверрайд исхода.
// Ошибки хранилища погашены в сервисе: ответ всегда 200
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.settingsServ.Get(r.Context())

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSettingsResponse(settings))
}

// NewSession создает игровую сессию
func (h *Handler) NewSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameServ.CreateSession(r.Context())
	if err != nil {
		resp.WriteJSONError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*session))
}

// Spin выполняет спин в указанной сессии
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.gameServ.Spin(r.Context(), converter.ToSpin(payload))
	if err != nil {
		resp.WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// State отдает снимок сессии по session_id из query
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if len(sessionID) == 0 {
		resp.WriteJSONError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	session, err := h.gameServ.SessionState(r.Context(), sessionID)
	if err != nil {
		resp.WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*session))
}

// Reset возвращает сессию к начальному состоянию
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ResetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.gameServ.ResetSession(r.Context(), payload.SessionID)
	if err != nil {
		resp.WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*session))
}
