package models

// Slot is one fixed component slot of the build checklist.
type Slot struct {
	ID       string
	Label    string
	Category string
}

// CategoryCore groups the parts every build needs.
const CategoryCore = "Core Components"

// Slots is the fixed, ordered slot table. Adding a row here is all it takes to
// extend the checklist; the store and renderers iterate this table.
var Slots = []Slot{
	{ID: "cpu", Label: "Processor", Category: CategoryCore},
	{ID: "motherboard", Label: "Motherboard", Category: CategoryCore},
	{ID: "ram", Label: "RAM", Category: CategoryCore},
	{ID: "storage", Label: "SSD", Category: CategoryCore},
	{ID: "gpu", Label: "GPU", Category: CategoryCore},
	{ID: "psu", Label: "PSU", Category: CategoryCore},
	{ID: "cpuCooler", Label: "AIO/Air Cooler", Category: CategoryCore},
	{ID: "case", Label: "PC Case", Category: CategoryCore},
}

var slotIndex = func() map[string]int {
	idx := make(map[string]int, len(Slots))
	for i, s := range Slots {
		idx[s.ID] = i
	}
	return idx
}()

// IsSlot reports whether id names a fixed slot.
func IsSlot(id string) bool {
	_, ok := slotIndex[id]
	return ok
}

// LookupSlot returns the slot with the given id.
func LookupSlot(id string) (Slot, bool) {
	i, ok := slotIndex[id]
	if !ok {
		return Slot{}, false
	}
	return Slots[i], true
}
