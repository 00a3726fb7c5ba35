package card

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MinimalCard(t *testing.T) {
	c, err := Parse([]byte(`{"id": 1, "numero": "I", "nom": "Le Bateleur"}`))
	require.NoError(t, err)

	assert.Equal(t, "1", c.ID)
	assert.Equal(t, "I", c.Numero)
	assert.Equal(t, "Le Bateleur", c.Nom)
	assert.Empty(t, c.Fields())
}

func TestParse_FullCard(t *testing.T) {
	data := `{
		"id": "marseille-02",
		"numero": 2,
		"nom": "La Papesse",
		"element": "Eau",
		"mot_cle_principal": "Intuition",
		"mots_cles_associes": "secret, savoir, patience",
		"symbolique_visuelle": "Un livre ouvert",
		"interpretation_positive": "Sagesse",
		"interpretation_negative": "Rétention",
		"interactions_notables": "Avec la Lune",
		"categorie_symbolique": "Arcane majeur",
		"image": "ignored.png"
	}`

	c, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "marseille-02", c.ID)
	assert.Equal(t, "2", c.Numero)
	assert.Equal(t, "Eau", c.Element)
	assert.Equal(t, "Intuition", c.MotClePrincipal)

	fields := c.Fields()
	require.Len(t, fields, 8)
	assert.Equal(t, "element", fields[0].Key)
	assert.Equal(t, "Élément", fields[0].Label)
	assert.Equal(t, "categorie_symbolique", fields[7].Key)
	assert.Equal(t, "Arcane majeur", fields[7].Value)
}

func TestParse_EmptyAndNullOptionalFieldsAreAbsent(t *testing.T) {
	c, err := Parse([]byte(`{"id": 3, "numero": "III", "nom": "L'Impératrice", "element": "", "mot_cle_principal": null}`))
	require.NoError(t, err)

	assert.Empty(t, c.Element)
	assert.Empty(t, c.MotClePrincipal)
	assert.Empty(t, c.Fields())
}

func TestParse_LargeIntegerIDKeepsDigits(t *testing.T) {
	c, err := Parse([]byte(`{"id": 12345678901234567, "numero": "0", "nom": "Le Mat"}`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567", c.ID)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"not json", `{"id": 1,`, ""},
		{"array", `[1, 2]`, ""},
		{"null", `null`, ""},
		{"missing id", `{"numero": "I", "nom": "Le Bateleur"}`, "id"},
		{"bool id", `{"id": true, "numero": "I", "nom": "Le Bateleur"}`, "id"},
		{"missing numero", `{"id": 1, "nom": "Le Bateleur"}`, "numero"},
		{"empty numero", `{"id": 1, "numero": "", "nom": "Le Bateleur"}`, "numero"},
		{"object numero", `{"id": 1, "numero": {}, "nom": "Le Bateleur"}`, "numero"},
		{"missing nom", `{"id": 1, "numero": "I"}`, "nom"},
		{"empty nom", `{"id": 1, "numero": "I", "nom": ""}`, "nom"},
		{"numeric nom", `{"id": 1, "numero": "I", "nom": 12}`, "nom"},
		{"numeric optional", `{"id": 1, "numero": "I", "nom": "Le Bateleur", "element": 4}`, "element"},
		{"list optional", `{"id": 1, "numero": "I", "nom": "Le Bateleur", "mots_cles_associes": ["a", "b"]}`, "mots_cles_associes"},
		{"trailing garbage", `{"id": 1, "numero": "I", "nom": "Le Bateleur"} {"broken"`, ""},
		{"second object", `{"id": 1, "numero": "I", "nom": "Le Bateleur"} {}`, ""},
		{"fractional id", `{"id": 1.5, "numero": "I", "nom": "Le Bateleur"}`, "id"},
		{"float id", `{"id": 1.0, "numero": "I", "nom": "Le Bateleur"}`, "id"},
		{"exponent id", `{"id": 1e3, "numero": "I", "nom": "Le Bateleur"}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)

			var malformed *MalformedCardError
			require.True(t, errors.As(err, &malformed), "expected MalformedCardError, got %T", err)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestFromRaw_FloatNumero(t *testing.T) {
	c, err := FromRaw(map[string]any{"id": float64(7), "numero": float64(7), "nom": "Le Chariot"})
	require.NoError(t, err)
	assert.Equal(t, "7", c.ID)
	assert.Equal(t, "7", c.Numero)
}

func TestParse_TrailingWhitespaceIsAccepted(t *testing.T) {
	c, err := Parse([]byte("{\"id\": 1, \"numero\": \"I\", \"nom\": \"Le Bateleur\"}\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", c.ID)
}

func TestParse_NumericAndTextIDsMatch(t *testing.T) {
	a, err := Parse([]byte(`{"id": 21, "numero": "XXI", "nom": "Le Monde"}`))
	require.NoError(t, err)
	b, err := Parse([]byte(`{"id": "21", "numero": "XXI", "nom": "Le Monde"}`))
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestFromRaw_FractionalFloatID(t *testing.T) {
	_, err := FromRaw(map[string]any{"id": 7.5, "numero": "VII", "nom": "Le Chariot"})

	var malformed *MalformedCardError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "id", malformed.Field)
}

func TestCard_Title(t *testing.T) {
	c := &Card{ID: "1", Numero: "I", Nom: "Le Bateleur"}
	assert.Equal(t, "I · Le Bateleur", c.Title())
}

func TestOptionalKeys(t *testing.T) {
	keys := OptionalKeys()
	assert.Len(t, keys, 8)
	assert.Equal(t, "element", keys[0])
	assert.Contains(t, keys, "interpretation_negative")
}
