package tui

import "time"

// frameMsg drives animation. seq ties it to one tick loop; stale loops are dropped.
type frameMsg struct {
	seq int
	at  time.Time
}

type flashDoneMsg struct{ seq int }

const (
	slideDuration = 120 * time.Millisecond
	flashDuration = 2 * time.Second
)
