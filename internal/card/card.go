package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Card represents one card of a divination deck
type Card struct {
	ID     string // Unique within its deck (JSON string or integer, kept as text)
	Numero string // Displayed number, may be non-numeric (e.g. "XXI", "0")
	Nom    string // Display name

	// Optional descriptive fields, empty when absent
	Element                string
	MotClePrincipal        string
	MotsClesAssocies       string
	SymboliqueVisuelle     string
	InterpretationPositive string
	InterpretationNegative string
	InteractionsNotables   string
	CategorieSymbolique    string
}

// Field is a labelled descriptive field of a card
type Field struct {
	Key   string
	Label string
	Value string
}

// optionalFields lists the descriptive fields in display order
var optionalFields = []struct {
	key   string
	label string
	get   func(*Card) *string
}{
	{"element", "Élément", func(c *Card) *string { return &c.Element }},
	{"mot_cle_principal", "Mot-clé principal", func(c *Card) *string { return &c.MotClePrincipal }},
	{"mots_cles_associes", "Mots-clés", func(c *Card) *string { return &c.MotsClesAssocies }},
	{"symbolique_visuelle", "Symbolique visuelle", func(c *Card) *string { return &c.SymboliqueVisuelle }},
	{"interpretation_positive", "Interprétation positive", func(c *Card) *string { return &c.InterpretationPositive }},
	{"interpretation_negative", "Interprétation négative", func(c *Card) *string { return &c.InterpretationNegative }},
	{"interactions_notables", "Interactions notables", func(c *Card) *string { return &c.InteractionsNotables }},
	{"categorie_symbolique", "Catégorie", func(c *Card) *string { return &c.CategorieSymbolique }},
}

// OptionalKeys returns the JSON keys of the optional descriptive fields
func OptionalKeys() []string {
	keys := make([]string, len(optionalFields))
	for i, f := range optionalFields {
		keys[i] = f.key
	}
	return keys
}

// MalformedCardError reports card data that does not satisfy the card model
type MalformedCardError struct {
	Field  string
	Reason string
}

func (e *MalformedCardError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed card: %s", e.Reason)
	}
	return fmt.Sprintf("malformed card: field %q %s", e.Field, e.Reason)
}

// Parse decodes and validates the JSON content of a single card
func Parse(data []byte) (*Card, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &MalformedCardError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}
	if raw == nil {
		return nil, &MalformedCardError{Reason: "not a JSON object: null"}
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, &MalformedCardError{Reason: "unexpected data after the card object"}
	}

	return FromRaw(raw)
}

// FromRaw validates decoded card data and normalizes it into a Card.
// Numbers are expected as json.Number or float64; unknown keys are ignored.
// A numeric id must be an integer and is kept as its decimal text, so the
// ids 1 and "1" name the same card.
func FromRaw(raw map[string]any) (*Card, error) {
	id, err := requiredScalar(raw, "id", true)
	if err != nil {
		return nil, err
	}

	numero, err := requiredScalar(raw, "numero", false)
	if err != nil {
		return nil, err
	}

	nom, ok := raw["nom"]
	if !ok || nom == nil {
		return nil, &MalformedCardError{Field: "nom", Reason: "is missing"}
	}
	nomStr, ok := nom.(string)
	if !ok {
		return nil, &MalformedCardError{Field: "nom", Reason: fmt.Sprintf("must be a string, got %T", nom)}
	}
	if nomStr == "" {
		return nil, &MalformedCardError{Field: "nom", Reason: "is empty"}
	}

	c := &Card{
		ID:     id,
		Numero: numero,
		Nom:    nomStr,
	}

	for _, f := range optionalFields {
		v, ok := raw[f.key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, &MalformedCardError{Field: f.key, Reason: fmt.Sprintf("must be a string, got %T", v)}
		}
		*f.get(c) = s
	}

	return c, nil
}

// requiredScalar reads a mandatory string-or-number field as text. With
// integer set, numbers with a fraction or an exponent are rejected.
func requiredScalar(raw map[string]any, key string, integer bool) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", &MalformedCardError{Field: key, Reason: "is missing"}
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
		if integer && strings.ContainsAny(s, ".eE") {
			return "", &MalformedCardError{Field: key, Reason: fmt.Sprintf("must be an integer, got %s", s)}
		}
	case float64:
		if integer && val != math.Trunc(val) {
			return "", &MalformedCardError{Field: key, Reason: fmt.Sprintf("must be an integer, got %v", val)}
		}
		s = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return "", &MalformedCardError{Field: key, Reason: fmt.Sprintf("must be a string or a number, got %T", v)}
	}

	if s == "" {
		return "", &MalformedCardError{Field: key, Reason: "is empty"}
	}
	return s, nil
}

// Fields returns the present descriptive fields in display order
func (c *Card) Fields() []Field {
	var fields []Field
	for _, f := range optionalFields {
		if v := *f.get(c); v != "" {
			fields = append(fields, Field{Key: f.key, Label: f.label, Value: v})
		}
	}
	return fields
}

// Title returns the card number and name as shown in listings
func (c *Card) Title() string {
	return fmt.Sprintf("%s · %s", c.Numero, c.Nom)
}
