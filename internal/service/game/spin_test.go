package game

import (
	"context"
	"testing"

	"judol_backend/internal/config"
	"judol_backend/internal/model"
)

func TestSpinUpdatesBalanceAndStats(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSettingsService()
	srv, _ := newTestService(defaultTestConfig(), fake)

	session, err := srv.CreateSession(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if session.Balance != 1000 {
		t.Fatalf("initial balance = %d, want 1000", session.Balance)
	}

	result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
	if err != nil {
		t.Fatal(err)
	}

	wantBalance := 1000 - 10 + result.Win
	if result.Balance != wantBalance {
		t.Fatalf("balance = %d, want %d", result.Balance, wantBalance)
	}
	if result.TotalSpins != 1 {
		t.Fatalf("totalSpins = %d, want 1", result.TotalSpins)
	}
	if result.Win > 0 && result.TotalWins != 1 {
		t.Fatalf("totalWins = %d after winning spin", result.TotalWins)
	}
	if result.Win == 0 && result.TotalWins != 0 {
		t.Fatalf("totalWins = %d after losing spin", result.TotalWins)
	}
}

// Нехватка баланса - тихий no-op: прежняя комбинация, нулевой
// выигрыш, статистика не меняется
func TestSpinInsufficientBalanceIsSilentNoop(t *testing.T) {
	ctx := context.Background()
	cfg := defaultTestConfig()
	cfg.initialBalance = 5
	cfg.minBet = 10
	fake := newFakeSettingsService()
	srv, _ := newTestService(cfg, fake)

	session, _ := srv.CreateSession(ctx)

	result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
	if err != nil {
		t.Fatal(err)
	}

	if result.Win != 0 {
		t.Fatalf("rejected spin returned win %d", result.Win)
	}
	if result.Reels != session.Reels {
		t.Fatalf("rejected spin changed reels: %v", result.Reels)
	}
	if result.TotalSpins != 0 || result.Balance != 5 {
		t.Fatalf("rejected spin mutated session: %+v", result)
	}
}

func TestSpinUnknownSession(t *testing.T) {
	srv, _ := newTestService(defaultTestConfig(), newFakeSettingsService())

	if _, err := srv.Spin(context.Background(), model.Spin{SessionID: "missing", Bet: 10}); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

// Взведенный WIN потребляется ровно одним спином, после чего
// состояние возвращается в RNG
func TestOverrideConsumedOnce(t *testing.T) {
	ctx := context.Background()
	cfg := defaultTestConfig()
	cfg.luckBoostSpins = 0
	fake := newFakeSettingsService()
	srv, watcher := newTestService(cfg, fake)

	session, _ := srv.CreateSession(ctx)

	// Оператор взводит WIN: и хранилище, и локальный кеш видят его
	armed, _ := fake.Update(ctx, model.OverrideWIN)
	watcher.SetLocal(armed)

	result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
	if err != nil {
		t.Fatal(err)
	}
	if result.Win <= 0 {
		t.Fatalf("armed WIN produced zero win: %v", result.Reels)
	}
	if fake.consumeCount() != 1 {
		t.Fatalf("consume count = %d, want 1", fake.consumeCount())
	}
	if got := fake.Get(ctx).OutcomeOverride; got != model.OverrideRNG {
		t.Fatalf("override after consume = %s, want RNG", got)
	}
	if got := watcher.Current().OutcomeOverride; got != model.OverrideRNG {
		t.Fatalf("local cache after consume = %s, want RNG", got)
	}

	// Второй спин идет обычным RNG без потребления
	if _, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10}); err != nil {
		t.Fatal(err)
	}
	if fake.consumeCount() != 1 {
		t.Fatalf("second spin consumed override again: %d", fake.consumeCount())
	}
}

// Сценарий: взведен LOSS, спин дает ноль, свежий читатель видит RNG
func TestArmedLossSpinsToZeroAndResets(t *testing.T) {
	ctx := context.Background()
	cfg := defaultTestConfig()
	cfg.luckBoostSpins = 0
	fake := newFakeSettingsService()
	srv, watcher := newTestService(cfg, fake)

	session, _ := srv.CreateSession(ctx)

	armed, _ := fake.Update(ctx, model.OverrideLOSS)
	watcher.SetLocal(armed)

	result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
	if err != nil {
		t.Fatal(err)
	}
	if result.Win != 0 {
		t.Fatalf("armed LOSS paid %d on reels %v", result.Win, result.Reels)
	}
	if got := fake.Get(ctx).OutcomeOverride; got != model.OverrideRNG {
		t.Fatalf("override after consume = %s, want RNG", got)
	}
}

// При сбое сброса сессия все равно считает оверрайд потребленным
func TestOverrideSoftFailStillApplies(t *testing.T) {
	ctx := context.Background()
	cfg := defaultTestConfig()
	cfg.luckBoostSpins = 0
	fake := newFakeSettingsService()
	fake.failSet = true
	srv, watcher := newTestService(cfg, fake)

	session, _ := srv.CreateSession(ctx)
	watcher.SetLocal(model.GameSettings{OutcomeOverride: model.OverrideWIN})

	result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
	if err != nil {
		t.Fatal(err)
	}
	if result.Win <= 0 {
		t.Fatalf("soft-failed consume must still force win, got %v", result.Reels)
	}
	// Локальный кеш сброшен, повторный спин не потребляет снова
	if got := watcher.Current().OutcomeOverride; got != model.OverrideRNG {
		t.Fatalf("local cache = %s, want RNG", got)
	}
}

// Окно удачи новичка закрывается навсегда после второго спина
func TestLuckWindowClosesPermanently(t *testing.T) {
	ctx := context.Background()

	// Обычная генерация всегда проигрывает (платящих комбинаций для 🍋 нет),
	// форсированный выигрыш всегда платит - исход спина однозначно
	// показывает, какой режим сработал
	cfg := &testGameConfig{
		symbols:       []string{"🍒", "🍋"},
		symbolWeights: map[string]int{"🍒": 0, "🍋": 1},
		payoutEntries: []config.PayoutEntry{
			{Symbols: []string{"🍒", "🍒", "🍒"}, Multiplier: 5},
		},
		losingCombos:       [][3]string{{"🍋", "🍋", "🍋"}},
		initialBalance:     1000,
		defaultBet:         10,
		minBet:             1,
		luckBoostSpins:     2,
		luckBoostWinChance: 1.0,
	}

	fake := newFakeSettingsService()
	srv, _ := newTestService(cfg, fake)
	session, _ := srv.CreateSession(ctx)

	for i := 0; i < 2; i++ {
		result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
		if err != nil {
			t.Fatal(err)
		}
		if result.Win <= 0 {
			t.Fatalf("spin %d inside luck window must win, got %v", i+1, result.Reels)
		}
	}

	// Окно закрыто: дальше только взвешенная генерация, которая
	// в этом конфиге не платит никогда
	for i := 0; i < 20; i++ {
		result, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10})
		if err != nil {
			t.Fatal(err)
		}
		if result.Win != 0 {
			t.Fatalf("luck window re-activated on spin %d: %v", result.TotalSpins, result.Reels)
		}
	}
}

func TestResetSession(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSettingsService()
	srv, _ := newTestService(defaultTestConfig(), fake)

	session, _ := srv.CreateSession(ctx)
	if _, err := srv.Spin(ctx, model.Spin{SessionID: session.ID, Bet: 10}); err != nil {
		t.Fatal(err)
	}

	restored, err := srv.ResetSession(ctx, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Balance != 1000 || restored.TotalSpins != 0 || restored.LastWin != 0 {
		t.Fatalf("session not restored: %+v", restored)
	}

	// Сброс сессии возвращает и общий оверрайд в RNG
	if len(fake.updates) == 0 || fake.updates[len(fake.updates)-1] != model.OverrideRNG {
		t.Fatalf("reset did not push RNG override: %v", fake.updates)
	}
}
