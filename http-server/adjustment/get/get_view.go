package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"supply-golang/internal/service/allocation"
)

type ViewProvider interface {
	AdjustmentView(ctx context.Context) ([]allocation.GroupView, error)
}

type ResponseView struct {
	Groups []allocation.GroupView `json:"groups"`
	Error  string                 `json:"error,omitempty"`
}

func GetAdjustmentView(log *slog.Logger, provider ViewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.adjustment.GetAdjustmentView"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		groups, err := provider.AdjustmentView(ctx)
		if err != nil {
			log.Error("failed to build adjustment view", slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseView{Groups: groups})
	}
}
