package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tirage/internal/deck"
	"github.com/arcanaland/tirage/internal/draw"
	"github.com/arcanaland/tirage/internal/session"
)

func testFS() fstest.MapFS {
	fsys := fstest.MapFS{
		"index/index_tarot_marseille.json": {Data: []byte(`[{"file": "01.json"}, {"file": "02.json"}, {"file": "03.json"}]`)},
		"index/index_tarot_boulot.json":    {Data: []byte(`[{"file": "01.json"}, {"file": "02.json"}]`)},
	}
	marseille := []string{"Le Bateleur", "La Papesse", "L'Impératrice"}
	for i, nom := range marseille {
		fsys[fmt.Sprintf("marseille/%02d.json", i+1)] = &fstest.MapFile{
			Data: []byte(fmt.Sprintf(`{"id": %d, "numero": "%d", "nom": %q, "mot_cle_principal": "Clé %d"}`, i+1, i+1, nom, i+1)),
		}
	}
	boulot := []string{"Le Stagiaire", "La Réunion"}
	for i, nom := range boulot {
		fsys[fmt.Sprintf("boulot/%02d.json", i+1)] = &fstest.MapFile{
			Data: []byte(fmt.Sprintf(`{"id": "b%d", "numero": "%d", "nom": %q}`, i+1, i+1, nom)),
		}
	}
	return fsys
}

func runScript(t *testing.T, fsys fstest.MapFS, script string) string {
	t.Helper()
	colorize.NoColor = true

	registry := deck.DefaultRegistry()
	loader := deck.NewLoader(registry, &deck.FSSource{FS: fsys})
	s := session.New(loader, draw.NewEngine(rand.NewPCG(3, 4)))
	defer s.Close()

	var out bytes.Buffer
	err := runPlay(context.Background(), s, registry, deck.Marseille, strings.NewReader(script), &out)
	require.NoError(t, err)
	return out.String()
}

func TestPlay_DrawAndShare(t *testing.T) {
	out := runScript(t, testFS(), "mode group\ndraw 3\nshare\nquit\n")

	assert.Contains(t, out, "Tirage de groupe · Tarot de Marseille")
	assert.Contains(t, out, "J'ai tiré : Le Bateleur, La Papesse, L'Impératrice avec le Tarot de Marseille !")
}

func TestPlay_SwitchDeckAndList(t *testing.T) {
	out := runScript(t, testFS(), "deck boulot\nlist\nshow b2\nstatus\n")

	assert.Contains(t, out, "Tarot de Boulot: 2 cartes")
	assert.Contains(t, out, "Le Stagiaire")
	assert.Contains(t, out, "La Réunion")
	assert.Contains(t, out, "deck: boulot (loaded)")
	assert.NotContains(t, out, "Le Bateleur")
}

func TestPlay_Errors(t *testing.T) {
	out := runScript(t, testFS(), "draw 4\ncount 11\nshow 99\nshare\nmode duo\nfoo\n")

	assert.Contains(t, out, "cannot draw 4 cards from a deck of 3")
	assert.Contains(t, out, "card count must be between 1 and 10")
	assert.Contains(t, out, "card not found")
	assert.Contains(t, out, "no draw yet")
	assert.Contains(t, out, "unknown draw mode")
	assert.Contains(t, out, "unknown command: foo")
}

func TestPlay_LoadFailureIsReported(t *testing.T) {
	fsys := testFS()
	delete(fsys, "marseille/02.json")

	out := runScript(t, fsys, "status\ndraw\nlist\n")

	assert.Contains(t, out, "Erreur de chargement")
	assert.Contains(t, out, "deck: marseille (failed)")
	assert.Contains(t, out, "no deck loaded")
}

func TestWrapText(t *testing.T) {
	lines := wrapText("Le Bateleur représente le commencement et la maîtrise des outils", 20)
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
	assert.Equal(t, "Le Bateleur", lines[0])
	assert.Equal(t, []string{""}, wrapText("   ", 20))
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("TIRAGE_DATA_DIR", "")
	t.Setenv("TIRAGE_BASE_URL", "")
	t.Setenv("TIRAGE_DEFAULT_DECK", "")

	data := filepath.Join(dir, "data")
	for name, f := range testFS() {
		p := filepath.Join(data, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, f.Data, 0644))
	}

	RootCmd.SetArgs([]string{"validate", data})
	assert.NoError(t, RootCmd.Execute())

	require.NoError(t, os.WriteFile(filepath.Join(data, "boulot", "02.json"), []byte(`{"id": "b2"}`), 0644))
	RootCmd.SetArgs([]string{"validate", data})
	assert.Error(t, RootCmd.Execute())
}
