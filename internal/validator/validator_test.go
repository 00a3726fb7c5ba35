package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tirage/internal/deck"
)

const fullCard = `{
	"id": %s, "numero": %q, "nom": %q,
	"element": "Air", "mot_cle_principal": "Début", "mots_cles_associes": "habileté",
	"symbolique_visuelle": "Une table", "interpretation_positive": "Initiative",
	"interpretation_negative": "Tromperie", "interactions_notables": "Le Monde",
	"categorie_symbolique": "Arcane majeur"
}`

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func cardJSON(id, numero, nom string) string {
	return fmt.Sprintf(fullCard, id, numero, nom)
}

func TestValidate_ValidDeck(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index/index_tarot_marseille.json", `[{"file": "01.json"}, {"file": "02.json"}]`)
	writeFile(t, root, "marseille/01.json", cardJSON("1", "I", "Le Bateleur"))
	writeFile(t, root, "marseille/02.json", cardJSON("2", "II", "La Papesse"))

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)

	assert.Empty(t, results.Errors)
	assert.Equal(t, 2, results.Cards[deck.Marseille])
	// boulot has no manifest
	require.Len(t, results.Warnings, 1)
	assert.Contains(t, results.Warnings[0], "boulot")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index/index_tarot_boulot.json",
		`[{"file": "a.json"}, {"file": "missing.json"}, {"file": "bad.json"}, {"file": "dup.json"}, {"file": "a.json"}, {"file": "short.json"}]`)
	writeFile(t, root, "boulot/a.json", cardJSON("1", "I", "Le Stagiaire"))
	writeFile(t, root, "boulot/bad.json", `{"id": 2, "numero": "II"}`)
	writeFile(t, root, "boulot/dup.json", cardJSON("1", "III", "Le Manager"))
	writeFile(t, root, "boulot/short.json", `{"id": 4, "numero": "I", "nom": "La Réunion"}`)
	writeFile(t, root, "boulot/orphan.json", cardJSON("9", "IX", "Le Télétravail"))

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)

	errs := strings.Join(results.Errors, "\n")
	assert.Len(t, results.Errors, 4, errs)
	assert.Contains(t, errs, "missing.json")
	assert.Contains(t, errs, "bad.json")
	assert.Contains(t, errs, `card id "1"`)
	assert.Contains(t, errs, "listed more than once")

	warnings := strings.Join(results.Warnings, "\n")
	assert.Contains(t, warnings, "orphan.json is not listed")
	assert.Contains(t, warnings, `numero "I"`)
	assert.Contains(t, warnings, "short.json has no element")
	assert.Equal(t, 2, results.Cards[deck.Boulot])
}

func TestValidate_InvalidManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index/index_tarot_marseille.json", `{"cards": []}`)

	results, err := NewValidator(root, nil).Validate()
	require.NoError(t, err)
	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "manifest for deck marseille is invalid")
}

func TestValidate_NoDecks(t *testing.T) {
	results, err := NewValidator(t.TempDir(), nil).Validate()
	require.NoError(t, err)
	assert.Contains(t, results.Errors, "no deck manifest found in data directory")
}

func TestValidate_MissingDirectory(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "nope"), nil).Validate()
	assert.Error(t, err)
}

func TestValidate_ExtraRegisteredDeck(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "thoth.json", `[{"file": "00.json"}]`)
	writeFile(t, root, "cards/00.json", cardJSON(`"fool"`, "0", "The Fool"))

	registry := deck.NewRegistry()
	require.NoError(t, registry.Register(deck.Definition{ID: "thoth", Manifest: "thoth.json", Folder: "cards"}))

	results, err := NewValidator(root, registry).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
	assert.Equal(t, 1, results.Cards["thoth"])
}
