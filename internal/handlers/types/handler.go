package types

import (
	"context"
	"net/http"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/FlagBrew/pokedex-api/internal/utils"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
)

type Lister interface {
	List(ctx context.Context) ([]models.Type, error)
}

type Handler struct {
	types Lister
}

func NewHandler(types Lister) *Handler {
	return &Handler{types: types}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	types, err := h.types.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to list types")
		utils.RespondError(w, r, http.StatusInternalServerError, "An unexpected error occurred", "")
		return
	}

	utils.Respond(w, r, http.StatusOK, types)
}
