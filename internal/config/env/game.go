package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"judol_backend/internal/config"

	"gopkg.in/yaml.v3"
)

// Структуры для разбора config.yaml
type gameYAML struct {
	Game struct {
		Symbols       []string       `yaml:"symbols"`
		SymbolWeights map[string]int `yaml:"symbol_weights"`
		Payouts       []struct {
			Symbols    []string `yaml:"symbols"`
			Multiplier int      `yaml:"multiplier"`
		} `yaml:"payouts"`
		LosingCombos   [][]string `yaml:"losing_combos"`
		InitialBalance int        `yaml:"initial_balance"`
		DefaultBet     int        `yaml:"default_bet"`
		MinBet         int        `yaml:"min_bet"`
		SpinDelayMs    int        `yaml:"spin_delay_ms"`
		LuckBoost      struct {
			Spins     int     `yaml:"spins"`
			WinChance float64 `yaml:"win_chance"`
		} `yaml:"luck_boost"`
	} `yaml:"game"`
}

type gameConfig struct {
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

// NewGameConfigFromYAML загружает и валидирует игровой конфиг из yaml-файла.
// Таблица выплат читается один раз на старте процесса и дальше только читается
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed gameYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	g := parsed.Game

	if len(g.Symbols) == 0 {
		return nil, errors.New("game config: symbols are empty")
	}

	known := make(map[string]bool, len(g.Symbols))
	for _, s := range g.Symbols {
		known[s] = true
	}

	// Каждый символ должен иметь положительный вес
	for _, s := range g.Symbols {
		if g.SymbolWeights[s] <= 0 {
			return nil, fmt.Errorf("game config: symbol %q has no positive weight", s)
		}
	}

	// Валидация таблицы выплат: 1-3 известных символа, множитель > 0
	entries := make([]config.PayoutEntry, 0, len(g.Payouts))
	for _, p := range g.Payouts {
		if len(p.Symbols) < 1 || len(p.Symbols) > 3 {
			return nil, fmt.Errorf("game config: payout combo %v has invalid length", p.Symbols)
		}
		if p.Multiplier <= 0 {
			return nil, fmt.Errorf("game config: payout combo %v has non-positive multiplier", p.Symbols)
		}
		// Пара оплачивается только по двум одинаковым ведущим символам;
		// разнородная пара недостижима для оценки и ломает гарантию
		// форсированного выигрыша при добивке случайным третьим символом
		if len(p.Symbols) == 2 && p.Symbols[0] != p.Symbols[1] {
			return nil, fmt.Errorf("game config: pair payout combo %v must repeat one symbol", p.Symbols)
		}
		for _, s := range p.Symbols {
			if !known[s] {
				return nil, fmt.Errorf("game config: payout combo uses unknown symbol %q", s)
			}
		}
		entries = append(entries, config.PayoutEntry{
			Symbols:    append([]string(nil), p.Symbols...),
			Multiplier: p.Multiplier,
		})
	}
	if len(entries) == 0 {
		return nil, errors.New("game config: payout table is empty")
	}

	// Запасные проигрышные комбинации: ровно 3 известных символа
	combos := make([][3]string, 0, len(g.LosingCombos))
	for _, c := range g.LosingCombos {
		if len(c) != 3 {
			return nil, fmt.Errorf("game config: losing combo %v must have 3 symbols", c)
		}
		for _, s := range c {
			if !known[s] {
				return nil, fmt.Errorf("game config: losing combo uses unknown symbol %q", s)
			}
		}
		combos = append(combos, [3]string{c[0], c[1], c[2]})
	}
	if len(combos) == 0 {
		return nil, errors.New("game config: losing combos are empty")
	}

	if g.InitialBalance <= 0 {
		return nil, errors.New("game config: initial balance must be positive")
	}
	if g.MinBet <= 0 || g.DefaultBet < g.MinBet {
		return nil, errors.New("game config: invalid bet bounds")
	}
	if g.LuckBoost.WinChance < 0 || g.LuckBoost.WinChance > 1 {
		return nil, errors.New("game config: luck boost win chance must be in [0, 1]")
	}

	return &gameConfig{
		symbols:            g.Symbols,
		symbolWeights:      g.SymbolWeights,
		payoutEntries:      entries,
		losingCombos:       combos,
		initialBalance:     g.InitialBalance,
		defaultBet:         g.DefaultBet,
		minBet:             g.MinBet,
		spinDelay:          time.Duration(g.SpinDelayMs) * time.Millisecond,
		luckBoostSpins:     g.LuckBoost.Spins,
		luckBoostWinChance: g.LuckBoost.WinChance,
	}, nil
}

func (cfg *gameConfig) Symbols() []string {
	return cfg.symbols
}

func (cfg *gameConfig) SymbolWeights() map[string]int {
	return cfg.symbolWeights
}

func (cfg *gameConfig) PayoutEntries() []config.PayoutEntry {
	return cfg.payoutEntries
}

func (cfg *gameConfig) LosingCombos() [][3]string {
	return cfg.losingCombos
}

func (cfg *gameConfig) InitialBalance() int {
	return cfg.initialBalance
}

func (cfg *gameConfig) DefaultBet() int {
	return cfg.defaultBet
}

func (cfg *gameConfig) MinBet() int {
	return cfg.minBet
}

func (cfg *gameConfig) SpinDelay() time.Duration {
	return cfg.spinDelay
}

func (cfg *gameConfig) LuckBoostSpins() int {
	return cfg.luckBoostSpins
}

func (cfg *gameConfig) LuckBoostWinChance() float64 {
	return cfg.luckBoostWinChance
}
