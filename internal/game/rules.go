package game

// Rules holds the scoring constants and timers of a game.
type Rules struct {
	TimePenalty   int // charged on every Pacman move, including Stop
	FoodScore     int
	WinPoints     int // awarded when the last food is eaten
	LosePoints    int // charged when an active ghost catches Pacman
	EatGhostScore int
	ScaredTime    int // ghost moves a ghost stays scared after a capsule
}

// DefaultRules returns the classic scoring rules
func DefaultRules() Rules {
	return Rules{
		TimePenalty:   1,
		FoodScore:     10,
		WinPoints:     500,
		LosePoints:    500,
		EatGhostScore: 200,
		ScaredTime:    40,
	}
}
