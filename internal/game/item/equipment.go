package item

import "github.com/riftward/riftward/internal/game/stats"

// Equipment is the per-run set of equipped items, one per slot.
// Not safe for concurrent use; the engine serialises access.
type Equipment struct {
	slots map[Slot]*Instance
}

// NewEquipment creates an empty equipped set.
func NewEquipment() *Equipment {
	return &Equipment{slots: make(map[Slot]*Instance)}
}

// At returns the instance equipped in slot, or nil.
func (e *Equipment) At(slot Slot) *Instance {
	return e.slots[slot]
}

// Equipped returns the equipped instances in slot display order.
func (e *Equipment) Equipped() []*Instance {
	var out []*Instance
	for _, s := range Slots() {
		if inst := e.slots[s]; inst != nil {
			out = append(out, inst)
		}
	}
	return out
}

// Equip places inst into its template's slot, returning whatever was
// displaced (nil if the slot was empty).
//
// Precondition: inst must be non-nil with a non-nil Template.
func (e *Equipment) Equip(inst *Instance) (displaced *Instance) {
	slot := inst.Template.Slot
	displaced = e.slots[slot]
	e.slots[slot] = inst
	return displaced
}

// AutoEquip places inst into its slot only if the slot is empty; reports
// whether it was equipped. Used by loot drops, which never displace a
// player's choice.
func (e *Equipment) AutoEquip(inst *Instance) bool {
	slot := inst.Template.Slot
	if e.slots[slot] != nil {
		return false
	}
	e.slots[slot] = inst
	return true
}

// Unequip removes and returns the item in slot (nil if empty).
func (e *Equipment) Unequip(slot Slot) *Instance {
	inst := e.slots[slot]
	delete(e.slots, slot)
	return inst
}

// Modifiers returns the summed stat contributions of every equipped item,
// scaled for the current total upgrade levels.
func (e *Equipment) Modifiers(totalUpgradeLevels int) []stats.Modifier {
	var out []stats.Modifier
	for _, inst := range e.Equipped() {
		out = append(out, inst.Modifiers(totalUpgradeLevels)...)
	}
	return out
}

// Clear drops every equipped item. Used on evolve and ascend; retain keeps
// equipment intact.
func (e *Equipment) Clear() {
	e.slots = make(map[Slot]*Instance)
}
