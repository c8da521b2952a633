package utils

import (
	"net/http"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/lrstanley/chix"
)

// Respond writes data inside a successful envelope.
func Respond[T any](w http.ResponseWriter, r *http.Request, statusCode int, data T) {
	chix.JSON(w, r, statusCode, models.Response[T]{
		Success: true,
		Data:    &data,
	})
}

// RespondError writes a failed envelope. An empty details string is sent as null.
func RespondError(w http.ResponseWriter, r *http.Request, statusCode int, message, details string) {
	resp := models.Response[any]{
		Success: false,
		Error:   &models.ResponseError{Message: message},
	}
	if details != "" {
		resp.Error.Details = &details
	}
	chix.JSON(w, r, statusCode, resp)
}
