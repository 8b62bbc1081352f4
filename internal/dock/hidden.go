package dock

import (
	"sort"

	"dock-cli/internal/model"
)

// HiddenSet holds ids whose visual is owned by a flight and must not be drawn in place.
type HiddenSet struct {
	ids map[model.ItemID]struct{}
}

func NewHiddenSet() *HiddenSet {
	return &HiddenSet{ids: map[model.ItemID]struct{}{}}
}

// Add reports whether id was newly added.
func (h *HiddenSet) Add(id model.ItemID) bool {
	if _, ok := h.ids[id]; ok {
		return false
	}
	h.ids[id] = struct{}{}
	return true
}

// Remove reports whether id was present.
func (h *HiddenSet) Remove(id model.ItemID) bool {
	if _, ok := h.ids[id]; !ok {
		return false
	}
	delete(h.ids, id)
	return true
}

func (h *HiddenSet) Has(id model.ItemID) bool {
	_, ok := h.ids[id]
	return ok
}

func (h *HiddenSet) Len() int { return len(h.ids) }

// IDs returns a sorted copy.
func (h *HiddenSet) IDs() []model.ItemID {
	out := make([]model.ItemID, 0, len(h.ids))
	for id := range h.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
