package deck

import (
	"errors"
	"fmt"
)

// ErrUnknownDeck is returned for identifiers missing from the registry
var ErrUnknownDeck = errors.New("unknown deck")

// ErrNotFound is returned by sources when a resource does not exist
var ErrNotFound = errors.New("resource not found")

// ErrTooLarge is returned by sources for resources over the size limit
var ErrTooLarge = errors.New("resource too large")

// ManifestUnavailableError reports a manifest that could not be fetched
type ManifestUnavailableError struct {
	Deck ID
	Path string
	Err  error
}

func (e *ManifestUnavailableError) Error() string {
	return fmt.Sprintf("manifest for deck %s unavailable (%s): %v", e.Deck, e.Path, e.Err)
}

func (e *ManifestUnavailableError) Unwrap() error { return e.Err }

// ManifestParseError reports a manifest that is not a list of entries
type ManifestParseError struct {
	Deck ID
	Path string
	Err  error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("manifest for deck %s is invalid (%s): %v", e.Deck, e.Path, e.Err)
}

func (e *ManifestParseError) Unwrap() error { return e.Err }

// AssemblyError reports the manifest entry that made assembly fail
type AssemblyError struct {
	Deck ID
	Ref  string
	Err  error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembling deck %s: entry %s: %v", e.Deck, e.Ref, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// DuplicateCardIDError reports two manifest entries resolving to the same card id
type DuplicateCardIDError struct {
	Deck   ID
	ID     string
	First  string
	Second string
}

func (e *DuplicateCardIDError) Error() string {
	return fmt.Sprintf("deck %s: card id %q used by both %s and %s", e.Deck, e.ID, e.First, e.Second)
}
