package effect

import "time"

// DoTKind identifies a damage-over-time flavor. Kinds differ only in name
// and in which class passives or abilities apply them.
type DoTKind int

const (
	Bleed DoTKind = iota
	Poison
	Burn
)

// String returns the lower-case kind name.
func (k DoTKind) String() string {
	switch k {
	case Bleed:
		return "bleed"
	case Poison:
		return "poison"
	case Burn:
		return "burn"
	default:
		return "unknown"
	}
}

// DefaultDoTDuration is the horizon over which DoTs deliver their stored
// damage unless the applier asks for a different one.
const DefaultDoTDuration = 3 * time.Second

// DoT is one active damage-over-time stack. Stacks tick down on the DoT
// sub-interval, independently of the generic timed effects.
type DoT struct {
	Kind      DoTKind
	Damage    float64 // total damage delivered over Total
	Total     time.Duration
	Remaining time.Duration
}

// ApplyDoT adds a stack delivering damage over duration. Stacks of the same
// kind accumulate rather than refresh, so two bleeds tick side by side.
//
// Precondition: damage > 0 and duration > 0; otherwise no-op.
func (r *Registry) ApplyDoT(kind DoTKind, damage float64, duration time.Duration) {
	if damage <= 0 || duration <= 0 {
		return
	}
	r.dots = append(r.dots, &DoT{Kind: kind, Damage: damage, Total: duration, Remaining: duration})
}

// DoTs returns a snapshot of the active stacks.
func (r *Registry) DoTs() []DoT {
	out := make([]DoT, 0, len(r.dots))
	for _, d := range r.dots {
		out = append(out, *d)
	}
	return out
}

// DoTTick is the damage one stack contributes on one sub-tick.
type DoTTick struct {
	Kind   DoTKind
	Damage float64
}

// TickDoTs advances every stack by interval and returns the damage each
// contributes this sub-tick: damage * interval / total, with the final tick
// prorated so a stack delivers exactly its stored damage over its duration.
// Exhausted stacks are dropped after contributing their final tick.
//
// Postcondition: summed tick damage over a stack's lifetime equals Damage
// within floating-point tolerance.
func (r *Registry) TickDoTs(interval time.Duration) []DoTTick {
	if len(r.dots) == 0 {
		return nil
	}
	var ticks []DoTTick
	live := r.dots[:0]
	for _, d := range r.dots {
		slice := interval
		if d.Remaining < slice {
			slice = d.Remaining
		}
		ticks = append(ticks, DoTTick{Kind: d.Kind, Damage: d.Damage * float64(slice) / float64(d.Total)})
		d.Remaining -= slice
		if d.Remaining > 0 {
			live = append(live, d)
		}
	}
	r.dots = live
	return ticks
}
