package upgrade

// Unlockable is anything gated by UnlockCriteria: upgrades, abilities, and
// any future content keyed by id and grouped under a notification tab.
type Unlockable struct {
	ID       string
	Tab      string
	Criteria *UnlockCriteria // nil = always unlocked
	Cost     float64         // current cost, for the affordability half of notification
}

// Tracker separates "criteria met" from "affordable": once an item's
// criteria pass it stays unlocked for the rest of the run, and the first
// time it is simultaneously unlocked and affordable its tab's notification
// counter bumps exactly once.
// Not safe for concurrent use.
type Tracker struct {
	unlocked      map[string]bool
	notified      map[string]bool
	notifications map[string]int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		unlocked:      make(map[string]bool),
		notified:      make(map[string]bool),
		notifications: make(map[string]int),
	}
}

// Unlocked reports whether id has ever met its criteria this run.
func (t *Tracker) Unlocked(id string) bool {
	return t.unlocked[id]
}

// Notifications returns the pending notification count for tab.
func (t *Tracker) Notifications(tab string) int {
	return t.notifications[tab]
}

// ClearTab zeroes the notification counter for tab (the player viewed it).
func (t *Tracker) ClearTab(tab string) {
	delete(t.notifications, tab)
}

// Refresh re-evaluates every item against the current progress totals and
// coin balance. Newly unlocked-and-affordable items increment their tab's
// counter; an item never notifies twice, and unlock state never reverts.
//
// Postcondition: for every item whose criteria pass, Unlocked(id) is true
// from now on.
func (t *Tracker) Refresh(items []Unlockable, totalLevels, coreVariety int, coins float64) {
	for _, item := range items {
		if !t.unlocked[item.ID] {
			if item.Criteria != nil && !item.Criteria.Met(totalLevels, coreVariety) {
				continue
			}
			t.unlocked[item.ID] = true
		}
		if !t.notified[item.ID] && coins >= item.Cost {
			t.notified[item.ID] = true
			t.notifications[item.Tab]++
		}
	}
}

// Reset forgets all unlock and notification state. Called on evolve and
// ascend; retain keeps the tracker intact.
func (t *Tracker) Reset() {
	t.unlocked = make(map[string]bool)
	t.notified = make(map[string]bool)
	t.notifications = make(map[string]int)
}
