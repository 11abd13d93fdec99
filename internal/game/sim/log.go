package sim

// LogCategory classifies combat log lines for the presentation layer.
type LogCategory string

const (
	LogInfo    LogCategory = "info"
	LogPlayer  LogCategory = "player"
	LogEnemy   LogCategory = "enemy"
	LogCrit    LogCategory = "crit"
	LogSpecial LogCategory = "special"
	LogReward  LogCategory = "reward"
	LogItem    LogCategory = "item"
)

// LogEntry is one combat log line.
type LogEntry struct {
	Category LogCategory
	Message  string
}

// Cue is one advisory visual request: damage numbers, heals, misses, ability
// flashes. The engine never reads cues back.
type Cue struct {
	Kind   string
	Amount float64
}

// maxLogBacklog bounds the undrained log so a driver that never drains
// doesn't grow without limit.
const maxLogBacklog = 256

func (e *Engine) log(category LogCategory, message string) {
	e.logLines = append(e.logLines, LogEntry{Category: category, Message: message})
	if len(e.logLines) > maxLogBacklog {
		e.logLines = e.logLines[len(e.logLines)-maxLogBacklog:]
	}
}

func (e *Engine) cue(kind string, amount float64) {
	e.cues = append(e.cues, Cue{Kind: kind, Amount: amount})
	if len(e.cues) > maxLogBacklog {
		e.cues = e.cues[len(e.cues)-maxLogBacklog:]
	}
}

// DrainLog returns and clears the accumulated combat log lines. The
// presentation layer calls this once per frame.
func (e *Engine) DrainLog() []LogEntry {
	out := e.logLines
	e.logLines = nil
	return out
}

// DrainCues returns and clears the accumulated visual cues.
func (e *Engine) DrainCues() []Cue {
	out := e.cues
	e.cues = nil
	return out
}
