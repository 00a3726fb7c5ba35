package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ManifestEntry references the file holding one card
type ManifestEntry struct {
	File string `json:"file"`
}

// Manifest is the ordered index of a deck's card files
type Manifest []ManifestEntry

// LoadManifest fetches and parses the index of a deck. It returns the
// whole manifest or an error, never a partial list.
func LoadManifest(ctx context.Context, src Source, def Definition) (Manifest, error) {
	data, err := src.Fetch(ctx, def.Manifest)
	if err != nil {
		return nil, &ManifestUnavailableError{Deck: def.ID, Path: def.Manifest, Err: err}
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, &ManifestParseError{Deck: def.ID, Path: def.Manifest, Err: err}
	}
	return m, nil
}

// ParseManifest decodes a JSON list of {"file": ...} records. Extra
// fields on an entry are ignored.
func ParseManifest(data []byte) (Manifest, error) {
	var raw []map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("not a list of entries: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("not a list of entries: null")
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the list of entries")
	}

	m := make(Manifest, 0, len(raw))
	for i, entry := range raw {
		if entry == nil {
			return nil, fmt.Errorf("entry %d is not an object", i)
		}
		rawFile, ok := entry["file"]
		if !ok {
			return nil, fmt.Errorf("entry %d has no file", i)
		}
		var file string
		if err := json.Unmarshal(rawFile, &file); err != nil {
			return nil, fmt.Errorf("entry %d: file must be a string", i)
		}
		if file == "" {
			return nil, fmt.Errorf("entry %d: file is empty", i)
		}
		m = append(m, ManifestEntry{File: file})
	}

	return m, nil
}
