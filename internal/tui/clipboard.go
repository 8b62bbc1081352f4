package tui

import (
	"strings"

	"github.com/atotto/clipboard"
)

// copyToClipboard is a var so tests can capture writes.
var copyToClipboard = func(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return clipboard.WriteAll(s)
}
