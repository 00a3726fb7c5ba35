package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arcanaland/tirage/internal/card"
	"github.com/arcanaland/tirage/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	// Cards counts the valid cards found per deck
	Cards map[deck.ID]int
}

type Validator struct {
	DataDir  string
	Registry *deck.Registry
	Results  ValidationResults

	source deck.Source
}

func NewValidator(dataDir string, registry *deck.Registry) *Validator {
	if registry == nil {
		registry = deck.DefaultRegistry()
	}
	return &Validator{
		DataDir:  dataDir,
		Registry: registry,
		Results:  ValidationResults{Cards: make(map[deck.ID]int)},
		source:   deck.NewDirSource(dataDir),
	}
}

// Validate checks every registered deck found under the data directory.
// Unlike deck loading it does not stop at the first problem.
func (v *Validator) Validate() (ValidationResults, error) {
	info, err := os.Stat(v.DataDir)
	if err != nil {
		return v.Results, fmt.Errorf("data directory not found: %s", v.DataDir)
	}
	if !info.IsDir() {
		return v.Results, fmt.Errorf("not a directory: %s", v.DataDir)
	}

	found := 0
	for _, def := range v.Registry.Definitions() {
		if v.validateDeck(def) {
			found++
		}
	}

	if found == 0 {
		v.Results.Errors = append(v.Results.Errors, "no deck manifest found in data directory")
	}

	return v.Results, nil
}

// validateDeck reports the problems of one deck; it returns false when
// the deck has no manifest at all
func (v *Validator) validateDeck(def deck.Definition) bool {
	ctx := context.Background()

	m, err := deck.LoadManifest(ctx, v.source, def)
	if err != nil {
		var unavailable *deck.ManifestUnavailableError
		if errors.As(err, &unavailable) && errors.Is(err, deck.ErrNotFound) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: manifest %s not found, deck skipped", def.ID, def.Manifest))
			return false
		}
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %v", def.ID, err))
		return true
	}

	if len(m) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("%s: manifest lists no cards", def.ID))
	}

	ids := make(map[string]string)
	numeros := make(map[string]string)
	referenced := make(map[string]bool)
	valid := 0

	for _, entry := range m {
		ref := def.CardPath(entry.File)
		if referenced[ref] {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s: %s is listed more than once", def.ID, ref))
			continue
		}
		referenced[ref] = true

		data, err := v.source.Fetch(ctx, ref)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %s: %v", def.ID, ref, err))
			continue
		}

		c, err := card.Parse(data)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %s: %v", def.ID, ref, err))
			continue
		}

		if other, ok := ids[c.ID]; ok {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s: card id %q used by both %s and %s", def.ID, c.ID, other, ref))
			continue
		}
		ids[c.ID] = ref

		if other, ok := numeros[c.Numero]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: numero %q used by both %s and %s", def.ID, c.Numero, other, ref))
		} else {
			numeros[c.Numero] = ref
		}

		v.checkOptionalFields(def.ID, ref, c)
		valid++
	}

	v.checkUnreferenced(def, referenced)
	v.Results.Cards[def.ID] = valid
	return true
}

// checkOptionalFields warns about cards missing descriptive text
func (v *Validator) checkOptionalFields(id deck.ID, ref string, c *card.Card) {
	present := make(map[string]bool)
	for _, f := range c.Fields() {
		present[f.Key] = true
	}

	var missing []string
	for _, key := range card.OptionalKeys() {
		if !present[key] {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: %s has no %s", id, ref, strings.Join(missing, ", ")))
	}
}

// checkUnreferenced warns about card files the manifest does not list
func (v *Validator) checkUnreferenced(def deck.Definition, referenced map[string]bool) {
	if def.Folder == "" {
		return
	}

	entries, err := os.ReadDir(filepath.Join(v.DataDir, filepath.FromSlash(def.Folder)))
	if err != nil {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: cannot read card folder %s: %v", def.ID, def.Folder, err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ref := path.Join(def.Folder, entry.Name())
		if !referenced[ref] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: %s is not listed in the manifest", def.ID, ref))
		}
	}
}
