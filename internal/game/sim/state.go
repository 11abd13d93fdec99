package sim

import "time"

// Phase is the run lifecycle state machine.
type Phase int

const (
	// Playing runs the full combat tick.
	Playing Phase = iota
	// Paused suspends everything until Resume.
	Paused
	// VictoryPaused covers the beat between a defeat and the next spawn.
	VictoryPaused
	// Event waits for the player to choose an event option.
	Event
	// GameOver is terminal until evolve/retain/restart.
	GameOver
	// GameWon is terminal until ascend or restart.
	GameWon
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case VictoryPaused:
		return "victoryPaused"
	case Event:
		return "event"
	case GameOver:
		return "gameOver"
	case GameWon:
		return "gameWon"
	}
	return "invalid"
}

// RunState is the per-run progression aggregate. It is rebuilt wholesale on
// evolve, retain, and ascend; nothing outside the lifecycle methods replaces
// it.
type RunState struct {
	Stage          int
	SubStage       int
	Coins          float64
	AscensionCount int
	LineageCount   int
	EventFlags     map[string]bool
	TriggeredEvents map[string]bool
	// RealmOrder is this run's shuffled realm id sequence; Stage n plays
	// RealmOrder[n-1].
	RealmOrder []string
}

func newRunState(coins float64, realmOrder []string) RunState {
	return RunState{
		Stage:           1,
		SubStage:        1,
		Coins:           coins,
		EventFlags:      make(map[string]bool),
		TriggeredEvents: make(map[string]bool),
		RealmOrder:      realmOrder,
	}
}

// CombatTimers holds the scheduler's accumulators as explicit fields rather
// than captured counters, so a tick step is a plain function of state.
type CombatTimers struct {
	PlayerAttack time.Duration
	EnemyAttack  time.Duration
	EnemyCharge  time.Duration
	// Charging marks the enemy's wind-up phase; ChargeDuration and
	// SpecialPending are latched when the wind-up starts.
	Charging       bool
	ChargeDuration time.Duration
	SpecialPending bool
}

// reset zeroes every timer and leaves the attack phase.
func (t *CombatTimers) reset() {
	*t = CombatTimers{}
}
