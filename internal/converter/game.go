package converter

import (
	"judol_backend/internal/api/dto/game"
	"judol_backend/internal/model"
)

func ToSettingsResponse(settings model.GameSettings) game.SettingsResponse {
	return game.SettingsResponse{
		OutcomeOverride: string(settings.OutcomeOverride),
		UpdatedAt:       settings.UpdatedAt,
	}
}

func ToSpin(req game.SpinRequest) model.Spin {
	return model.Spin{
		SessionID: req.SessionID,
		Bet:       req.Bet,
	}
}

func ToSpinResponse(result model.SpinResult) game.SpinResponse {
	return game.SpinResponse{
		Reels:      result.Reels,
		Win:        result.Win,
		Balance:    result.Balance,
		LastWin:    result.LastWin,
		TotalSpins: result.TotalSpins,
		TotalWins:  result.TotalWins,
	}
}

func ToSessionResponse(session model.GameSession) game.SessionResponse {
	return game.SessionResponse{
		SessionID:  session.ID,
		Balance:    session.Balance,
		BetAmount:  session.BetAmount,
		LastWin:    session.LastWin,
		TotalSpins: session.TotalSpins,
		TotalWins:  session.TotalWins,
		Reels:      session.Reels,
	}
}
