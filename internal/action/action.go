// Package action defines the remedies offered for a group of files and
// carries them out.
package action

import (
	"fmt"

	"github.com/substantialcattle5/cleanfiles/internal/config"
)

// Action is a remedy that can be applied to a file group
type Action int

const (
	Delete Action = iota + 1
	Skip
	KeepNewest
	AutoFixPermission
	AutoFixCharacters
	ManualRename
	ReplaceOldWithNew
	KeepSelected
	MoveToX
	CopyToX
)

// Scope tells which members of a group an action touches
type Scope int

const (
	// ScopeGroup actions operate on every member
	ScopeGroup Scope = iota
	// ScopeSingle actions operate on the first member only
	ScopeSingle
)

var names = map[Action]string{
	Delete:            "delete",
	Skip:              "skip",
	KeepNewest:        "keep-newest",
	AutoFixPermission: "fix-permission",
	AutoFixCharacters: "fix-characters",
	ManualRename:      "rename",
	ReplaceOldWithNew: "replace-old",
	KeepSelected:      "keep-selected",
	MoveToX:           "move-to-x",
	CopyToX:           "copy-to-x",
}

func (a Action) String() string {
	if name, ok := names[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Scope returns the scope of the action
func (a Action) Scope() Scope {
	switch a {
	case AutoFixPermission, AutoFixCharacters, ManualRename, MoveToX, CopyToX:
		return ScopeSingle
	default:
		return ScopeGroup
	}
}

// Label renders the menu text for a, filling in configured values.
func Label(a Action, cfg config.Config) string {
	switch a {
	case Delete:
		return "Delete file(s)"
	case Skip:
		return "Skip"
	case KeepNewest:
		return "Keep newest"
	case AutoFixPermission:
		return fmt.Sprintf("Automatic chmod (%s)", cfg.BadPermissionReplacement)
	case AutoFixCharacters:
		return fmt.Sprintf("Automatic rename (replace bad characters with '%s')", cfg.BadCharacterReplacement)
	case ManualRename:
		return "Manual rename"
	case ReplaceOldWithNew:
		return "Replace old version(s) with new"
	case KeepSelected:
		return "Manual select file to keep"
	case MoveToX:
		return "Move file to X directory"
	case CopyToX:
		return "Copy file to X directory"
	default:
		return a.String()
	}
}
