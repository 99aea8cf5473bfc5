package web

import (
	"fmt"
	"strings"
)

// HistoryMode selects how the current view is encoded in the URL.
type HistoryMode string

const (
	// HistoryWeb addresses each view by its own URL path, e.g. /room-tour.
	HistoryWeb HistoryMode = "web"

	// HistoryHash serves a single shell and addresses views by fragment,
	// e.g. /#/room-tour.
	HistoryHash HistoryMode = "hash"
)

// ParseHistoryMode converts a configuration string into a HistoryMode.
// The empty string selects HistoryWeb.
func ParseHistoryMode(s string) (HistoryMode, error) {
	m := HistoryMode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return HistoryWeb, nil
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate reports whether m is a supported history mode.
func (m HistoryMode) Validate() error {
	switch m {
	case HistoryWeb, HistoryHash:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be web or hash)", ErrInvalidHistory, string(m))
	}
}
