package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/portfolio-backend/errs"
)

const bannerMessage = "API de Portfólio de Desenvolvedor"

// healthTimeout bounds the datastore ping behind GET /health.
const healthTimeout = 2 * time.Second

// pinger reports whether the datastore is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type systemHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	startupTime time.Time
}

func newSystemHandler(db pinger, startupTime time.Time) systemHandler {
	logger := log.With().Str("handlerName", "systemHandler").Logger()

	return systemHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// root identifies the service.
func (h systemHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, MessageResponse{Message: bannerMessage})
	}
}

// health answers 200 while the datastore responds to a ping and 503 otherwise.
func (h systemHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			apiErr := errs.NewApiErr(http.StatusServiceUnavailable, "database unavailable")
			apiErr.Cause = err
			h.responder.WriteError(w, apiErr)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
