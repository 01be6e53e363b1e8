package restore

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"supply-golang/internal/service/allocation"
)

type Restorer interface {
	RestoreOrders(ctx context.Context, orderIDs []string) (*allocation.RestoreResult, error)
}

type Request struct {
	OrderIDs []string `json:"order_ids"`
}

type Response struct {
	Restored int    `json:"restored"`
	Message  string `json:"message"`
}

func RestoreOrders(log *slog.Logger, restorer Restorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.adjustment.RestoreOrders"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := restorer.RestoreOrders(ctx, req.OrderIDs)
		if err != nil {
			log.Error("restore failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("orders restored", slog.Int("requested", len(req.OrderIDs)), slog.Int("restored", result.Restored))

		render.JSON(w, r, Response{Restored: result.Restored, Message: "orders restored"})
	}
}
