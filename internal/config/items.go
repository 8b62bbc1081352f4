package config

import (
	"fmt"
	"sort"
	"strings"

	"dock-cli/internal/model"

	"github.com/BurntSushi/toml"
)

// itemFile is the on-disk item set:
//
//	[[item]]
//	id = "term"
//	label = "Terminal"
//	icon = ">_"
//	color = "#7aa2f7"
type itemFile struct {
	Item []model.Item `toml:"item"`
}

// DefaultItems is the set shown when no item file is configured. Ids are fixed so replay
// scripts can refer to them.
func DefaultItems() []model.Item {
	return []model.Item{
		{ID: "term", Label: "Terminal", Icon: ">_", Color: "#7aa2f7"},
		{ID: "files", Label: "Files", Icon: "[]", Color: "#9ece6a"},
		{ID: "web", Label: "Browser", Icon: "@", Color: "#e0af68"},
		{ID: "mail", Label: "Mail", Icon: "✉", Color: "#f7768e"},
		{ID: "music", Label: "Music", Icon: "♪", Color: "#bb9af7"},
		{ID: "notes", Label: "Notes", Icon: "✎", Color: "#7dcfff"},
	}
}

// LoadItems decodes an item set. An empty path yields DefaultItems. Unknown keys are rejected
// so a typo does not silently drop a field.
func LoadItems(path string) ([]model.Item, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultItems(), nil
	}
	var f itemFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("read items %s: %w", path, err)
	}
	return checkItems(path, md, f)
}

// ParseItems decodes an item set from TOML text.
func ParseItems(src string) ([]model.Item, error) {
	var f itemFile
	md, err := toml.Decode(src, &f)
	if err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	return checkItems("<inline>", md, f)
}

func checkItems(name string, md toml.MetaData, f itemFile) ([]model.Item, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("items %s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if len(f.Item) == 0 {
		return nil, fmt.Errorf("items %s: no [[item]] entries", name)
	}
	for i, it := range f.Item {
		if strings.TrimSpace(it.Label) == "" {
			return nil, fmt.Errorf("items %s: item %d has no label", name, i+1)
		}
	}
	// Validate ids (duplicates) and fill in missing ones.
	_, items, err := model.NewCatalog(f.Item)
	if err != nil {
		return nil, fmt.Errorf("items %s: %w", name, err)
	}
	return items, nil
}
