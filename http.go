package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/FlagBrew/pokedex-api/internal/handlers/pokemon"
	"github.com/FlagBrew/pokedex-api/internal/handlers/types"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/FlagBrew/pokedex-api/internal/store"
	"github.com/FlagBrew/pokedex-api/internal/utils"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/lrstanley/chix"
)

func httpServer(ctx context.Context, pokedex *store.Store) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.ListeningAddr, cfg.HTTP.Port),
		Handler: newRouter(logger, &cfg.HTTP, cli.Debug, pokedex),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		// Some sane defaults.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

func newRouter(logger log.Interface, httpCfg *models.HTTPConfig, debug bool, pokedex *store.Store) chi.Router {
	chix.DefaultAPIPrefix = "/api/"

	r := chi.NewRouter()

	r.Use(
		chix.UseContextIP,
		middleware.RequestID,
		chix.UseStructuredLogger(logger),
		chix.UseDebug(debug),
		chix.UseRecoverer,
		middleware.Maybe(middleware.StripSlashes, func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/debug/")
		}),
		middleware.Compress(5),
		cors.Handler(cors.Options{
			AllowedOrigins: httpCfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}),
	)

	if httpCfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(httpCfg.RateLimit, time.Minute))
	}

	if httpCfg.RequestTimeout > 0 {
		r.Use(requestDeadline(httpCfg.RequestTimeout))
	}

	if debug {
		r.Mount("/debug", middleware.Profiler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, r, http.StatusNotFound, "Route not found", fmt.Sprintf("%s %s does not exist.", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, r, http.StatusMethodNotAllowed, "Method not allowed", fmt.Sprintf("%s is not supported on %s.", r.Method, r.URL.Path))
	})

	r.Route("/api/pokemon", pokemon.NewHandler(pokedex).Route)
	r.Route("/api/types", types.NewHandler(pokedex.Types()).Route)

	return r
}

// requestDeadline bounds the request context to d. It never writes to the
// response, expired store calls are answered by the handler.
func requestDeadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
