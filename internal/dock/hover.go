package dock

// NoIndex marks "no slot" for hover and hit-testing.
const NoIndex = -1

// HoverTracker remembers which slot has pointer focus. It knows nothing about drags;
// suppression for the dragged or flying item happens when a Frame is built.
type HoverTracker struct {
	index int
}

func NewHoverTracker() *HoverTracker {
	return &HoverTracker{index: NoIndex}
}

// Index returns the hovered slot or NoIndex.
func (h *HoverTracker) Index() int { return h.index }

// Set makes index the hovered slot (NoIndex clears). Re-setting the same index is a no-op.
func (h *HoverTracker) Set(index int) (changed bool) {
	if index < 0 {
		index = NoIndex
	}
	if h.index == index {
		return false
	}
	h.index = index
	return true
}

func (h *HoverTracker) Clear() bool { return h.Set(NoIndex) }

// Enter is the pointer-enter contract for slot index.
func (h *HoverTracker) Enter(index int) bool { return h.Set(index) }

// Exit is the pointer-exit contract. Exiting a slot that is not the hovered one is ignored:
// enter(b) may be delivered before exit(a).
func (h *HoverTracker) Exit(index int) bool {
	if h.index != index {
		return false
	}
	return h.Clear()
}
