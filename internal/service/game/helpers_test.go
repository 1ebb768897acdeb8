package game

import (
	"context"
	"sync"
	"time"

	"judol_backend/internal/broker"
	"judol_backend/internal/config"
	"judol_backend/internal/model"
	"judol_backend/internal/service"
	"judol_backend/internal/service/settings"
)

// Тестовая реализация игрового конфига
type testGameConfig struct {
	symbols            []string
	symbolWeights      map[string]int
	payoutEntries      []config.PayoutEntry
	losingCombos       [][3]string
	initialBalance     int
	defaultBet         int
	minBet             int
	spinDelay          time.Duration
	luckBoostSpins     int
	luckBoostWinChance float64
}

func (c *testGameConfig) Symbols() []string                  { return c.symbols }
func (c *testGameConfig) SymbolWeights() map[string]int      { return c.symbolWeights }
func (c *testGameConfig) PayoutEntries() []config.PayoutEntry { return c.payoutEntries }
func (c *testGameConfig) LosingCombos() [][3]string          { return c.losingCombos }
func (c *testGameConfig) InitialBalance() int                { return c.initialBalance }
func (c *testGameConfig) DefaultBet() int                    { return c.defaultBet }
func (c *testGameConfig) MinBet() int                        { return c.minBet }
func (c *testGameConfig) SpinDelay() time.Duration           { return c.spinDelay }
func (c *testGameConfig) LuckBoostSpins() int                { return c.luckBoostSpins }
func (c *testGameConfig) LuckBoostWinChance() float64        { return c.luckBoostWinChance }

// Конфиг с таблицей выплат исходной системы и нулевой задержкой спина
func defaultTestConfig() *testGameConfig {
	return &testGameConfig{
		symbols: []string{"🍒", "🍋", "🍊", "🔔", "⭐", "💎", "7️⃣"},
		symbolWeights: map[string]int{
			"🍒": 30, "🍋": 25, "🍊": 20, "🔔": 10, "⭐": 8, "💎": 5, "7️⃣": 2,
		},
		payoutEntries: []config.PayoutEntry{
			{Symbols: []string{"💎", "💎", "💎"}, Multiplier: 50},
			{Symbols: []string{"7️⃣", "7️⃣", "7️⃣"}, Multiplier: 30},
			{Symbols: []string{"⭐", "⭐", "⭐"}, Multiplier: 20},
			{Symbols: []string{"🔔", "🔔", "🔔"}, Multiplier: 15},
			{Symbols: []string{"🍊", "🍊", "🍊"}, Multiplier: 10},
			{Symbols: []string{"🍋", "🍋", "🍋"}, Multiplier: 8},
			{Symbols: []string{"🍒", "🍒", "🍒"}, Multiplier: 5},
			{Symbols: []string{"💎", "💎"}, Multiplier: 3},
			{Symbols: []string{"7️⃣", "7️⃣"}, Multiplier: 2},
			{Symbols: []string{"🍒", "🍒"}, Multiplier: 2},
			{Symbols: []string{"🍒"}, Multiplier: 1},
		},
		losingCombos: [][3]string{
			{"🍋", "🍊", "🔔"},
			{"🔔", "⭐", "💎"},
			{"7️⃣", "🍊", "🍋"},
		},
		initialBalance:     1000,
		defaultBet:         10,
		minBet:             1,
		spinDelay:          0,
		luckBoostSpins:     2,
		luckBoostWinChance: 0.75,
	}
}

// Дублер сервиса настроек: хранит значение в памяти и считает вызовы
type fakeSettingsService struct {
	mtx      sync.Mutex
	settings model.GameSettings
	consumes int
	updates  []model.OutcomeOverride
	failSet  bool
}

func newFakeSettingsService() *fakeSettingsService {
	return &fakeSettingsService{settings: model.DefaultGameSettings()}
}

func (f *fakeSettingsService) Get(_ context.Context) model.GameSettings {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.settings
}

func (f *fakeSettingsService) Update(_ context.Context, override model.OutcomeOverride) (model.GameSettings, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.settings = model.GameSettings{OutcomeOverride: override, UpdatedAt: time.Now().UnixMilli()}
	f.updates = append(f.updates, override)
	return f.settings, nil
}

func (f *fakeSettingsService) ConsumeAndReset(_ context.Context, armed model.OutcomeOverride) model.OutcomeOverride {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.consumes++
	if f.failSet {
		// Сбой записи: локально оверрайд считается потребленным
		return armed
	}
	consumed := f.settings.OutcomeOverride
	if consumed == model.OverrideRNG {
		return model.OverrideRNG
	}
	f.settings = model.GameSettings{OutcomeOverride: model.OverrideRNG, UpdatedAt: time.Now().UnixMilli()}
	return consumed
}

func (f *fakeSettingsService) Subscribe(_ context.Context) (broker.Subscription, error) {
	panic("not used in game tests")
}

func (f *fakeSettingsService) consumeCount() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.consumes
}

// newTestService собирает игровой сервис с дублером настроек.
// Watcher не запускается: кеш обновляется напрямую через SetLocal
func newTestService(cfg config.GameConfig, fake *fakeSettingsService) (service.GameService, *settings.Watcher) {
	watcher := settings.NewWatcher(fake)
	return NewGameService(cfg, fake, watcher), watcher
}
