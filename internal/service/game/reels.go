package game

import (
	"math/rand"

	"judol_backend/internal/config"
)

const (
	// Границы ярусов форсированного выигрыша (по множителю)
	highTierMin   = 20
	mediumTierMin = 5

	// Вероятности выбора яруса: 10% дорогой, 30% средний, 60% дешевый
	highTierChance   = 0.10
	mediumTierChance = 0.30

	// Ограничение попыток при генерации проигрыша
	maxLossAttempts = 10
	// После этого числа попыток берем запасную комбинацию
	lossFallbackAfter = 5
)

// generateRandomReels - взвешенная генерация: каждая из трех позиций
// выбирается независимо по распределению весов символов
func (s *serv) generateRandomReels() [3]string {
	return [3]string{
		s.drawWeightedSymbol(),
		s.drawWeightedSymbol(),
		s.drawWeightedSymbol(),
	}
}

// drawWeightedSymbol выбирает символ кумулятивным проходом по
// упорядоченному списку символов
func (s *serv) drawWeightedSymbol() string {
	symbols := s.cfg.Symbols()
	weights := s.cfg.SymbolWeights()

	total := 0
	for _, sym := range symbols {
		total += weights[sym]
	}

	roll := rand.Float64() * float64(total)
	for _, sym := range symbols {
		w := float64(weights[sym])
		if roll < w {
			return sym
		}
		roll -= w
	}

	return symbols[0]
}

// generateWinningReels выбирает комбинацию с гарантированной выплатой.
// Комбинации сгруппированы в ярусы по множителю; дорогие ярусы выпадают реже
func (s *serv) generateWinningReels() [3]string {
	entries := s.cfg.PayoutEntries()

	var high, medium, low []config.PayoutEntry
	for _, e := range entries {
		switch {
		case e.Multiplier >= highTierMin:
			high = append(high, e)
		case e.Multiplier >= mediumTierMin:
			medium = append(medium, e)
		default:
			low = append(low, e)
		}
	}

	roll := rand.Float64()
	var tier []config.PayoutEntry
	switch {
	case roll < highTierChance && len(high) > 0:
		tier = high
	case roll < highTierChance+mediumTierChance && len(medium) > 0:
		tier = medium
	case len(low) > 0:
		tier = low
	default:
		tier = entries
	}

	combo := tier[rand.Intn(len(tier))].Symbols

	// Короткие комбинации добиваются случайными символами: префиксные
	// правила выплат все равно гарантируют выигрыш
	var reels [3]string
	for i := 0; i < 3; i++ {
		if i < len(combo) {
			reels[i] = combo[i]
		} else {
			reels[i] = s.randomSymbol()
		}
	}

	return reels
}

// generateLosingReels подбирает комбинацию с нулевой выплатой.
// Число попыток ограничено, после lossFallbackAfter берется заведомо
// проигрышная комбинация из конфига - цикл всегда завершается
func (s *serv) generateLosingReels() [3]string {
	for attempt := 0; attempt < maxLossAttempts; attempt++ {
		if attempt > lossFallbackAfter {
			break
		}

		reels := s.generateRandomReels()
		if s.calculateWin(reels, 1) == 0 {
			return reels
		}
	}

	combos := s.cfg.LosingCombos()
	return combos[rand.Intn(len(combos))]
}

func (s *serv) randomSymbol() string {
	symbols := s.cfg.Symbols()
	return symbols[rand.Intn(len(symbols))]
}
