package classify

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the criterion files are grouped by
type Mode int

const (
	Duplicates Mode = iota + 1
	Empty
	Temp
	SameName
	BadPermission
	BadCharacterName
	MissingInX
)

type modeInfo struct {
	name  string
	title string
	help  string
}

var modes = map[Mode]modeInfo{
	Duplicates:       {"duplicates", "find duplicate files", "Find duplicate files"},
	Empty:            {"empty", "find empty files", "Find empty files"},
	Temp:             {"temp", "find temp files", "Find temp files"},
	SameName:         {"same-name", "find same name files", "Find same name files"},
	BadPermission:    {"bad-permission", "find bad permission", "Find bad permission files"},
	BadCharacterName: {"bad-character", "find bad character files", "Find bad character files"},
	MissingInX:       {"missing-in-x", "find X-nonexistent files in Y dirs", "Find X-directory nonexistent files (hashes) in Y directories"},
}

// Modes returns every mode in menu order
func Modes() []Mode {
	return []Mode{Duplicates, Empty, Temp, SameName, BadPermission, BadCharacterName, MissingInX}
}

// String returns the command line name of the mode
func (m Mode) String() string {
	if info, ok := modes[m]; ok {
		return info.name
	}
	return "unknown"
}

// Title is the quoted label shown in group headers
func (m Mode) Title() string {
	if info, ok := modes[m]; ok {
		return "'" + info.title + "'"
	}
	return "UNKNOWN_MODE"
}

// Description is the label used in the mode menu
func (m Mode) Description() string {
	if info, ok := modes[m]; ok {
		return info.help
	}
	return "Unknown mode"
}

// Valid reports whether m is one of the seven modes
func (m Mode) Valid() bool {
	_, ok := modes[m]
	return ok
}

// ParseMode accepts a menu number ("1".."7") or a mode name
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if m := Mode(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("unknown mode number %d (expected 1-%d)", n, len(modes))
	}
	for _, m := range Modes() {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
