package registry

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"wiregen/internal/common/fsutil"
	"wiregen/pkg/types"
)

const maxCatalogBytes = 1 << 20

// catalogFile is the on-disk layout of a models file.
type catalogFile struct {
	Models []types.Model `json:"models" yaml:"models"`
}

// FromIDs builds catalog entries from bare model identifiers.
// Blank ids are skipped; Name defaults to the id and Family is inferred.
func FromIDs(ids []string, provider string) []types.Model {
	var models []types.Model
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		models = append(models, types.Model{ID: id, Name: id, Family: Family(id), Provider: provider})
	}
	return models
}

// LoadFile reads a catalog from a .yaml/.yml or .json file with a top-level
// "models" list. Entries without an id are rejected.
func LoadFile(path, provider string) ([]types.Model, error) {
	b, err := fsutil.ReadFile(path, maxCatalogBytes)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cf catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cf)
	case ".json":
		err = json.Unmarshal(b, &cf)
	default:
		return nil, fmt.Errorf("unsupported catalog extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range cf.Models {
		m := &cf.Models[i]
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if m.Name == "" {
			m.Name = m.ID
		}
		if m.Family == "" {
			m.Family = Family(m.ID)
		}
		if m.Provider == "" {
			m.Provider = provider
		}
		m.Default = false
	}
	return cf.Models, nil
}

// Build merges catalog sources, drops duplicate ids (first wins) and marks the
// default model, appending it when no source lists it.
func Build(defaultID, provider string, sources ...[]types.Model) []types.Model {
	seen := make(map[string]bool)
	var out []types.Model
	for _, src := range sources {
		for _, m := range src {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			m.Default = m.ID == defaultID
			out = append(out, m)
		}
	}
	if defaultID != "" && !seen[defaultID] {
		d := FromIDs([]string{defaultID}, provider)[0]
		d.Default = true
		out = append([]types.Model{d}, out...)
	}
	return out
}

// Family infers a model family from the leading alphabetic run of the id,
// e.g. "gemini-1.5-pro" -> "gemini", "gpt-4o" -> "gpt".
func Family(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	end := strings.IndexFunc(id, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return id
	}
	return id[:end]
}
