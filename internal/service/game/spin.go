package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"judol_backend/internal/model"
)

// Spin выполняет один спин от начала до конца: снимок оверрайда,
// генерация барабанов, оценка выплаты, обновление баланса и статистики.
// Повторный спин в той же сессии и нехватка баланса - тихий no-op:
// возвращается прежняя комбинация с нулевым выигрышем
func (s *serv) Spin(ctx context.Context, spin model.Spin) (*model.SpinResult, error) {
	bet, prior, started, err := s.beginSpin(spin)
	if err != nil {
		return nil, err
	}
	if !started {
		return prior, nil
	}

	// Косметическая задержка вращения барабанов
	if delay := s.cfg.SpinDelay(); delay > 0 {
		time.Sleep(delay)
	}

	reels := s.spinReels(ctx, spin.SessionID)
	win := s.calculateWin(reels, bet)

	return s.endSpin(spin.SessionID, bet, reels, win)
}

// spinReels выбирает режим генерации по снимку оверрайда и окну удачи
func (s *serv) spinReels(ctx context.Context, sessionID string) [3]string {
	snapshot := s.watcher.Current()

	if snapshot.OutcomeOverride != model.OverrideRNG {
		// Взведенный оверрайд потребляется ровно одним спином,
		// после чего общее состояние возвращается в RNG
		consumed := s.settingsServ.ConsumeAndReset(ctx, snapshot.OutcomeOverride)
		s.watcher.SetLocal(model.GameSettings{
			OutcomeOverride: model.OverrideRNG,
			UpdatedAt:       time.Now().UnixMilli(),
		})

		switch consumed {
		case model.OverrideWIN:
			return s.generateWinningReels()
		case model.OverrideLOSS:
			return s.generateLosingReels()
		}
		// Гонку за оверрайд выиграла другая сессия - обычная генерация
	}

	// Окно удачи новичка: первые спины выигрышные с фиксированной
	// вероятностью. Окно закрывается навсегда по счетчику спинов
	if s.inLuckWindow(sessionID) && rand.Float64() < s.cfg.LuckBoostWinChance() {
		return s.generateWinningReels()
	}

	return s.generateRandomReels()
}

func (s *serv) inLuckWindow(sessionID string) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	return session.TotalSpins < s.cfg.LuckBoostSpins()
}

// beginSpin атомарно проверяет и захватывает флаг isSpinning.
// Возвращает started=false с прежним результатом, если спин отклонен
func (s *serv) beginSpin(spin model.Spin) (bet int, prior *model.SpinResult, started bool, err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	session, ok := s.sessions[spin.SessionID]
	if !ok {
		return 0, nil, false, errors.New("session not found")
	}

	bet = spin.Bet
	if bet <= 0 {
		bet = session.BetAmount
	}
	// Ставка зажимается в [minBet, balance]
	if bet < s.cfg.MinBet() {
		bet = s.cfg.MinBet()
	}
	if bet > session.Balance && session.Balance >= s.cfg.MinBet() {
		bet = session.Balance
	}

	if session.IsSpinning || session.Balance < bet {
		return 0, &model.SpinResult{
			Reels:      session.Reels,
			Win:        0,
			Balance:    session.Balance,
			LastWin:    session.LastWin,
			TotalSpins: session.TotalSpins,
			TotalWins:  session.TotalWins,
		}, false, nil
	}

	session.BetAmount = bet
	session.IsSpinning = true
	return bet, nil, true, nil
}

// endSpin фиксирует результат спина и снимает флаг isSpinning
func (s *serv) endSpin(sessionID string, bet int, reels [3]string, win int) (*model.SpinResult, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}

	session.Balance = session.Balance - bet + win
	session.LastWin = win
	session.TotalSpins++
	if win > 0 {
		session.TotalWins++
	}
	session.Reels = reels
	session.IsSpinning = false

	return &model.SpinResult{
		Reels:      reels,
		Win:        win,
		Balance:    session.Balance,
		LastWin:    win,
		TotalSpins: session.TotalSpins,
		TotalWins:  session.TotalWins,
	}, nil
}
