package deck

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPSource_InvalidURL(t *testing.T) {
	_, err := NewHTTPSource("ftp://example.com", 0)
	assert.Error(t, err)

	_, err = NewHTTPSource("://bad", 0)
	assert.Error(t, err)
}

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tarot/index/index_tarot_marseille.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"file": "a.json"}]`))
		case "/tarot/marseille/a.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 1, "numero": "I", "nom": "Le Bateleur"}`))
		case "/tarot/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src, err := NewHTTPSource(server.URL+"/tarot", 0)
	require.NoError(t, err)

	data, err := src.Fetch(context.Background(), "index/index_tarot_marseille.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"file": "a.json"}]`, string(data))

	_, err = src.Fetch(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Fetch(context.Background(), "broken.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPSource_RejectsOversizedResource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/limit.json":
			w.Write(bytes.Repeat([]byte(" "), maxResourceBytes))
		case "/over.json":
			w.Write(bytes.Repeat([]byte(" "), maxResourceBytes+1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src, err := NewHTTPSource(server.URL, 0)
	require.NoError(t, err)

	data, err := src.Fetch(context.Background(), "limit.json")
	require.NoError(t, err)
	assert.Len(t, data, maxResourceBytes)

	_, err = src.Fetch(context.Background(), "over.json")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestHTTPSource_LoadsDeck(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Path {
		case "/index/index_tarot_marseille.json":
			w.Write([]byte(`[{"file": "a.json"}, {"file": "b.json"}]`))
		case "/marseille/a.json":
			w.Write([]byte(`{"id": 1, "numero": "I", "nom": "Le Bateleur"}`))
		case "/marseille/b.json":
			w.Write([]byte(`{"id": 2, "numero": "II", "nom": "La Papesse"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src, err := NewHTTPSource(server.URL, 100)
	require.NoError(t, err)

	d, err := NewLoader(DefaultRegistry(), src, WithMaxConcurrentFetches(1)).Load(context.Background(), Marseille)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "La Papesse", d.At(1).Nom)
	assert.Equal(t, 3, requests)
}

func TestDirSource_Fetch(t *testing.T) {
	src := NewDirSource(t.TempDir())

	_, err := src.Fetch(context.Background(), "index/index_tarot_marseille.json")
	assert.ErrorIs(t, err, ErrNotFound)
}
