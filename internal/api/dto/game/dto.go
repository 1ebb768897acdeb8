package game

type SettingsResponse struct {
	OutcomeOverride string `json:"outcomeOverride"` // RNG | WIN | LOSS
	UpdatedAt       int64  `json:"updatedAt"`       // unix-миллисекунды
}

type SpinRequest struct {
	SessionID string `json:"sessionId"` // ID игровой сессии
	Bet       int    `json:"bet"`       // Размер ставки
}

type SpinResponse struct {
	Reels      [3]string `json:"reels"`      // Итоговая комбинация
	Win        int       `json:"win"`        // Выигрыш за спин
	Balance    int       `json:"balance"`    // Баланс после
	LastWin    int       `json:"lastWin"`    // Последний выигрыш
	TotalSpins int       `json:"totalSpins"` // Всего спинов
	TotalWins  int       `json:"totalWins"`  // Всего выигрышей
}

type SessionResponse struct {
	SessionID  string    `json:"sessionId"`
	Balance    int       `json:"balance"`
	BetAmount  int       `json:"betAmount"`
	LastWin    int       `json:"lastWin"`
	TotalSpins int       `json:"totalSpins"`
	TotalWins  int       `json:"totalWins"`
	Reels      [3]string `json:"reels"`
}

type ResetRequest struct {
	SessionID string `json:"sessionId"`
}
