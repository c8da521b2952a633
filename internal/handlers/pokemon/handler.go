package pokemon

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/FlagBrew/pokedex-api/internal/store"
	"github.com/FlagBrew/pokedex-api/internal/utils"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/lrstanley/chix"
)

// Store is the subset of *store.Store the handler needs.
type Store interface {
	GetAll(ctx context.Context) ([]models.Pokemon, error)
	GetByID(ctx context.Context, id int) (*models.Pokemon, error)
	Create(ctx context.Context, draft models.PokemonDraft) (*models.Pokemon, error)
	Update(ctx context.Context, id int, patch models.PokemonPatch) (*models.Pokemon, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Handler struct {
	store Store
}

func NewHandler(s Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mons, err := h.store.GetAll(r.Context())
	if err != nil {
		h.storeError(w, r, "", err)
		return
	}

	utils.Respond(w, r, http.StatusOK, mons)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	mon, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, chi.URLParam(r, "id"), err)
		return
	}

	utils.Respond(w, r, http.StatusOK, mon)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload models.PokemonDraft
	if err := chix.Bind(r, &payload); err != nil {
		utils.RespondError(
			w, r, http.StatusBadRequest,
			msgMissingFields,
			"One or more required fields (name, sprite, or types) are missing or invalid in the request.",
		)
		return
	}

	mon, err := h.store.Create(r.Context(), payload)
	if err != nil {
		h.storeError(w, r, "", err)
		return
	}

	log.FromContext(r.Context()).WithField("id", mon.ID).Info("pokemon created")
	utils.Respond(w, r, http.StatusCreated, mon)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var payload models.PokemonPatch
	if err := chix.Bind(r, &payload); err != nil {
		utils.RespondError(w, r, http.StatusBadRequest, msgInvalidFields, err.Error())
		return
	}

	if blank(payload.Name) || blank(payload.Sprite) {
		utils.RespondError(w, r, http.StatusBadRequest, msgInvalidFields, "name and sprite must not be blank when provided.")
		return
	}

	mon, err := h.store.Update(r.Context(), id, payload)
	if err != nil {
		h.storeError(w, r, chi.URLParam(r, "id"), err)
		return
	}

	utils.Respond(w, r, http.StatusOK, mon)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.storeError(w, r, chi.URLParam(r, "id"), err)
		return
	}

	if !deleted {
		notFound(w, r, chi.URLParam(r, "id"))
		return
	}

	log.FromContext(r.Context()).WithField("id", id).Info("pokemon deleted")
	w.WriteHeader(http.StatusNoContent)
}

// storeError maps store failures onto the envelope. Database details are
// logged but never sent to the client.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case store.IsValidation(err):
		utils.RespondError(w, r, http.StatusBadRequest, msgInvalidFields, err.Error())
	case store.IsNotFound(err):
		notFound(w, r, id)
	default:
		logger := log.FromContext(r.Context()).WithError(err)
		if id != "" {
			logger = logger.WithField("id", id)
		}
		logger.Error("pokemon store operation failed")
		utils.RespondError(w, r, http.StatusInternalServerError, msgInternal, "")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.RespondError(w, r, http.StatusBadRequest, msgInvalidID, fmt.Sprintf("%q is not a valid Pokémon ID.", raw))
		return 0, false
	}
	return id, true
}

func blank(v *string) bool {
	return v != nil && strings.TrimSpace(*v) == ""
}

func notFound(w http.ResponseWriter, r *http.Request, id string) {
	utils.RespondError(
		w, r, http.StatusNotFound,
		msgNotFound,
		fmt.Sprintf("The Pokémon with the ID %s does not exist in our records.", id),
	)
}
