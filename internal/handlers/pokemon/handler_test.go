package pokemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/FlagBrew/pokedex-api/internal/store"
	"github.com/FlagBrew/pokedex-api/internal/testdb"
)

func newRouter(t *testing.T, s Store) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api/pokemon", NewHandler(s).Route)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) models.Response[T] {
	t.Helper()

	var resp models.Response[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func TestHandlerCRUD(t *testing.T) {
	h := newRouter(t, store.New(testdb.New(t)))

	rec := do(t, h, http.MethodPost, "/api/pokemon", map[string]any{
		"name":   "Bulbasaur",
		"sprite": "https://img.pokemondb.net/sprites/home/normal/bulbasaur.png",
		"types":  []string{"Grass", "Poison"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[models.Pokemon](t, rec)
	assert.True(t, created.Success)
	assert.Nil(t, created.Error)
	require.NotNil(t, created.Data)
	id := created.Data.ID
	assert.Positive(t, id)
	assert.Equal(t, []string{"Grass", "Poison"}, created.Data.Types)
	assert.Nil(t, created.Data.PokedexNumber)

	rec = do(t, h, http.MethodGet, "/api/pokemon", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Pokemon](t, rec)
	assert.True(t, list.Success)
	require.NotNil(t, list.Data)
	assert.Len(t, *list.Data, 1)

	path := "/api/pokemon/" + strconv.Itoa(id)

	rec = do(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Pokemon](t, rec)
	assert.Equal(t, created.Data, got.Data)

	rec = do(t, h, http.MethodPut, path, map[string]any{"sprite": "newurl", "pokedex_number": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Pokemon](t, rec)
	assert.Equal(t, "newurl", updated.Data.Sprite)
	assert.Equal(t, "Bulbasaur", updated.Data.Name)
	assert.Equal(t, []string{"Grass", "Poison"}, updated.Data.Types)
	require.NotNil(t, updated.Data.PokedexNumber)
	assert.Equal(t, 1, *updated.Data.PokedexNumber)

	rec = do(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	notFound := decode[models.Pokemon](t, rec)
	assert.False(t, notFound.Success)
	assert.Nil(t, notFound.Data)
	require.NotNil(t, notFound.Error)
	assert.Equal(t, msgNotFound, notFound.Error.Message)
	require.NotNil(t, notFound.Error.Details)
	assert.Contains(t, *notFound.Error.Details, strconv.Itoa(id))
}

func TestHandlerBadRequests(t *testing.T) {
	h := newRouter(t, store.New(testdb.New(t)))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{name: "non-numeric id", method: http.MethodGet, path: "/api/pokemon/abc", want: http.StatusBadRequest},
		{name: "zero id", method: http.MethodGet, path: "/api/pokemon/0", want: http.StatusBadRequest},
		{name: "negative id on delete", method: http.MethodDelete, path: "/api/pokemon/-4", want: http.StatusBadRequest},
		{name: "negative id on update", method: http.MethodPut, path: "/api/pokemon/-4", body: map[string]any{"name": "x"}, want: http.StatusBadRequest},
		{
			name:   "missing name",
			method: http.MethodPost,
			path:   "/api/pokemon",
			body:   map[string]any{"sprite": "url", "types": []string{"Fire"}},
			want:   http.StatusBadRequest,
		},
		{
			name:   "empty types",
			method: http.MethodPost,
			path:   "/api/pokemon",
			body:   map[string]any{"name": "Charmander", "sprite": "url", "types": []string{}},
			want:   http.StatusBadRequest,
		},
		{
			name:   "only unknown types",
			method: http.MethodPost,
			path:   "/api/pokemon",
			body:   map[string]any{"name": "Charmander", "sprite": "url", "types": []string{"Bird"}},
			want:   http.StatusBadRequest,
		},
		{
			name:   "blank name on update",
			method: http.MethodPut,
			path:   "/api/pokemon/1",
			body:   map[string]any{"name": "   "},
			want:   http.StatusBadRequest,
		},
		{
			name:   "blank sprite on update",
			method: http.MethodPut,
			path:   "/api/pokemon/1",
			body:   map[string]any{"sprite": "\t"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "update missing pokemon",
			method: http.MethodPut,
			path:   "/api/pokemon/404",
			body:   map[string]any{"name": "Mew"},
			want:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			resp := decode[any](t, rec)
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}

	// Nothing from the rejected creates was stored.
	rec := do(t, h, http.MethodGet, "/api/pokemon", nil)
	list := decode[[]models.Pokemon](t, rec)
	assert.Empty(t, *list.Data)
}

type failingStore struct {
	err error
}

func (f failingStore) GetAll(context.Context) ([]models.Pokemon, error) { return nil, f.err }

func (f failingStore) GetByID(context.Context, int) (*models.Pokemon, error) { return nil, f.err }

func (f failingStore) Create(context.Context, models.PokemonDraft) (*models.Pokemon, error) {
	return nil, f.err
}

func (f failingStore) Update(context.Context, int, models.PokemonPatch) (*models.Pokemon, error) {
	return nil, f.err
}

func (f failingStore) Delete(context.Context, int) (bool, error) { return false, f.err }

func TestHandlerHidesPersistenceErrors(t *testing.T) {
	secret := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	h := newRouter(t, failingStore{err: &store.PersistenceError{Op: "querying pokemon", Err: secret}})

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{method: http.MethodGet, path: "/api/pokemon"},
		{method: http.MethodGet, path: "/api/pokemon/1"},
		{method: http.MethodPost, path: "/api/pokemon", body: map[string]any{"name": "Mew", "sprite": "url", "types": []string{"Psychic"}}},
		{method: http.MethodPut, path: "/api/pokemon/1", body: map[string]any{"name": "Mew"}},
		{method: http.MethodDelete, path: "/api/pokemon/1"},
	}

	for _, req := range requests {
		t.Run(req.method+" "+req.path, func(t *testing.T) {
			rec := do(t, h, req.method, req.path, req.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotContains(t, rec.Body.String(), "10.0.0.5")

			resp := decode[any](t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, msgInternal, resp.Error.Message)
			assert.Nil(t, resp.Error.Details)
		})
	}
}
