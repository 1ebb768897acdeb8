package game

// calculateWin вычисляет выигрыш за комбинацию.
// Порядок проверок фиксирован, первое совпадение выигрывает:
//  1. все три символа одинаковые - ключ из трех
//  2. первые два символа одинаковые - ключ из двух
//  3. полная склеенная комбинация присутствует в таблице напрямую
//  4. первый символ в одиночку (только на ведущей позиции)
//  5. иначе выигрыша нет
//
// Тройное совпадение никогда не перекрывается двойным или одиночным ключом
func (s *serv) calculateWin(reels [3]string, bet int) int {
	if reels[0] == reels[1] && reels[1] == reels[2] {
		if mult, ok := s.payouts[reels[0]+reels[1]+reels[2]]; ok {
			return mult * bet
		}
	}

	if reels[0] == reels[1] {
		if mult, ok := s.payouts[reels[0]+reels[1]]; ok {
			return mult * bet
		}
	}

	if mult, ok := s.payouts[reels[0]+reels[1]+reels[2]]; ok {
		return mult * bet
	}

	if mult, ok := s.payouts[reels[0]]; ok {
		return mult * bet
	}

	return 0
}
