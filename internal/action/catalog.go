package action

import (
	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/config"
)

var catalogs = map[classify.Mode][]Action{
	classify.Duplicates:       {Delete, KeepNewest, KeepSelected, ReplaceOldWithNew, Skip},
	classify.Empty:            {Delete, Skip},
	classify.Temp:             {Delete, Skip},
	classify.SameName:         {KeepNewest, KeepSelected, ReplaceOldWithNew, Delete, Skip},
	classify.BadPermission:    {AutoFixPermission, Delete, Skip},
	classify.BadCharacterName: {AutoFixCharacters, ManualRename, Delete, Skip},
	classify.MissingInX:       {CopyToX, MoveToX, Delete, Skip},
}

// Catalog returns the ordered actions offered in mode. The list always ends
// with Skip.
func Catalog(mode classify.Mode) []Action {
	actions, ok := catalogs[mode]
	if !ok {
		return []Action{Skip}
	}
	return append([]Action(nil), actions...)
}

// Labels renders the menu text of every action in order
func Labels(actions []Action, cfg config.Config) []string {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = Label(a, cfg)
	}
	return labels
}
