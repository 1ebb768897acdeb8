package game

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"judol_backend/internal/config"
	"judol_backend/internal/model"
	"judol_backend/internal/service"
	"judol_backend/internal/service/settings"

	"github.com/google/uuid"
)

type serv struct {
	cfg          config.GameConfig
	settingsServ service.SettingsService
	watcher      *settings.Watcher

	// Таблица выплат, склеенная по комбинациям. Заполняется один раз
	// в конструкторе и дальше только читается
	payouts map[string]int

	mtx      sync.RWMutex
	sessions map[string]*model.GameSession
}

// NewGameService Создать игровой сервис слота 1x3
func NewGameService(
	cfg config.GameConfig,
	settingsServ service.SettingsService,
	watcher *settings.Watcher,
) service.GameService {
	payouts := make(map[string]int, len(cfg.PayoutEntries()))
	for _, entry := range cfg.PayoutEntries() {
		payouts[strings.Join(entry.Symbols, "")] = entry.Multiplier
	}

	return &serv{
		cfg:          cfg,
		settingsServ: settingsServ,
		watcher:      watcher,
		payouts:      payouts,
		sessions:     make(map[string]*model.GameSession),
	}
}

// CreateSession создает новую сессию с начальным балансом
func (s *serv) CreateSession(_ context.Context) (*model.GameSession, error) {
	session := &model.GameSession{
		ID:        uuid.NewString(),
		Balance:   s.cfg.InitialBalance(),
		BetAmount: s.cfg.DefaultBet(),
		Reels:     s.initialReels(),
	}

	s.mtx.Lock()
	s.sessions[session.ID] = session
	s.mtx.Unlock()

	return session, nil
}

// SessionState возвращает снимок сессии
func (s *serv) SessionState(_ context.Context, sessionID string) (*model.GameSession, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}

	snapshot := *session
	return &snapshot, nil
}

// ResetSession возвращает сессию к начальному состоянию
// и сбрасывает общий оверрайд в RNG
func (s *serv) ResetSession(ctx context.Context, sessionID string) (*model.GameSession, error) {
	s.mtx.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mtx.Unlock()
		return nil, errors.New("session not found")
	}

	*session = model.GameSession{
		ID:        session.ID,
		Balance:   s.cfg.InitialBalance(),
		BetAmount: s.cfg.DefaultBet(),
		Reels:     s.initialReels(),
	}
	snapshot := *session
	s.mtx.Unlock()

	// Сброс общих настроек best effort
	if _, err := s.settingsServ.Update(ctx, model.OverrideRNG); err != nil {
		log.Printf("game: reset override failed: %v", err)
	}

	return &snapshot, nil
}

// initialReels - стартовая комбинация до первого спина
func (s *serv) initialReels() [3]string {
	symbols := s.cfg.Symbols()
	return [3]string{symbols[0], symbols[1%len(symbols)], symbols[2%len(symbols)]}
}
