package admin

import (
	"log"
	"net/http"

	dto "judol_backend/internal/api/dto/admin"
	"judol_backend/internal/config"
	"judol_backend/internal/model"
	"judol_backend/internal/service"
	"judol_backend/pkg/req"
	"judol_backend/pkg/resp"
	"judol_backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type HandlerDeps struct {
	SettingsServ service.SettingsService
	AdminCfg     config.AdminConfig
	JWTCfg       config.JWTConfig
}

type Handler struct {
	settingsServ service.SettingsService
	adminCfg     config.AdminConfig
	jwtCfg       config.JWTConfig
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		settingsServ: deps.SettingsServ,
		adminCfg:     deps.AdminCfg,
		jwtCfg:       deps.JWTCfg,
	}
}

// Login проверяет пароль оператора и выдает токен доступа
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = bcrypt.CompareHashAndPassword(h.adminCfg.PasswordHash(), []byte(payload.Password))
	if err != nil {
		http.Error(w, "invalid password", http.StatusUnauthorized)
		return
	}

	accessToken, err := token.GenerateAccessToken("operator", h.jwtCfg.AccessTokenSecretKey(), h.jwtCfg.AccessTokenDuration())
	if err != nil {
		log.Println("Login error:", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		AccessToken: accessToken,
	})
}

// UpdateSettings устанавливает оверрайд исхода.
// Значение вне {RNG, WIN, LOSS} - единственная пользовательская
// ошибка валидации в подсистеме, отдается как 400
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.UpdateSettingsRequest](r.Body)
	if err != nil {
		resp.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	override := model.OutcomeOverride(payload.OutcomeOverride)
	if !override.Valid() {
		resp.WriteJSONError(w, http.StatusBadRequest, "Invalid outcome override value")
		return
	}

	settings, err := h.settingsServ.Update(r.Context(), override)
	if err != nil {
		log.Println("UpdateSettings error:", err)
		resp.WriteJSONResponse(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.UpdateSettingsResponse{
		Success:         true,
		OutcomeOverride: string(settings.OutcomeOverride),
		UpdatedAt:       settings.UpdatedAt,
	})
}
