package config

import "strings"

// Mode selects whether the phase driver advances.
type Mode int

const (
	ModeStill Mode = iota
	ModeMotion
)

func (m Mode) String() string {
	switch m {
	case ModeStill:
		return "still"
	case ModeMotion:
		return "motion"
	}
	return "unknown"
}

// ParseMode accepts "still"/"motion" and the original tool ids.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "still", "still_capture":
		return ModeStill, true
	case "motion", "motion_capture":
		return ModeMotion, true
	}
	return ModeStill, false
}
