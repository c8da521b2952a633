package types

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/FlagBrew/pokedex-api/internal/store"
	"github.com/FlagBrew/pokedex-api/internal/testdb"
)

type listerFunc func(ctx context.Context) ([]models.Type, error)

func (f listerFunc) List(ctx context.Context) ([]models.Type, error) { return f(ctx) }

func serve(t *testing.T, l Lister) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api/types", NewHandler(l).Route)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/types", nil))
	return rec
}

func TestList(t *testing.T) {
	rec := serve(t, store.NewTypeLookup(testdb.New(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Response[[]models.Type]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.Len(t, *resp.Data, len(database.DefaultTypes))
	assert.Equal(t, "Normal", (*resp.Data)[0].Name)
}

func TestListFailure(t *testing.T) {
	rec := serve(t, listerFunc(func(context.Context) ([]models.Type, error) {
		return nil, errors.New("connection reset by peer")
	}))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")

	var resp models.Response[[]models.Type]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
}
