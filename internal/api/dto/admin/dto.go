package admin

type LoginRequest struct {
	Password string `json:"password"` // Пароль оператора
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UpdateSettingsRequest struct {
	OutcomeOverride string `json:"outcomeOverride"` // RNG | WIN | LOSS
}

type UpdateSettingsResponse struct {
	Success         bool   `json:"success"`
	OutcomeOverride string `json:"outcomeOverride"`
	UpdatedAt       int64  `json:"updatedAt"`
}
