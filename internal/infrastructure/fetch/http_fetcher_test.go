package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/infrastructure/fetch"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/q.pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := fetch.NewHTTPFetcher()

	body, err := f.Fetch(context.Background(), srv.URL+"/q.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), body)

	_, err = f.Fetch(context.Background(), srv.URL+"/privado.pdf")
	assert.Error(t, err)
}
