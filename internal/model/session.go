package model

// GameSession - состояние одной игровой сессии.
// Живет только в памяти процесса и мутируется только своими спинами
type GameSession struct {
	ID         string
	Balance    int
	BetAmount  int
	LastWin    int
	TotalSpins int
	TotalWins  int
	IsSpinning bool
	Reels      [3]string
}

// Spin - запрос на спин
type Spin struct {
	SessionID string
	Bet       int
}

// SpinResult - результат спина вместе со статистикой сессии
type SpinResult struct {
	Reels      [3]string
	Win        int
	Balance    int
	LastWin    int
	TotalSpins int
	TotalWins  int
}
