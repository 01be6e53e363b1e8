package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"supply-golang/internal/storage"
)

type OrdersProvider interface {
	GetOrders(ctx context.Context, status storage.OrderStatus, from, to time.Time) ([]*storage.PendingOrder, error)
}

type ResponseOrders struct {
	Orders []*storage.PendingOrder `json:"orders"`
	Error  string                  `json:"error,omitempty"`
}

// GetOrdersFilter lists orders for the back-office screens. Optional status
// and date range; the range defaults to the current month.
func GetOrdersFilter(log *slog.Logger, provider OrdersProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.GetOrdersFilter"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		statusStr := r.URL.Query().Get("status")
		fromStr := r.URL.Query().Get("from")
		toStr := r.URL.Query().Get("to")

		status := storage.OrderStatus(statusStr)
		if statusStr != "" && !status.Valid() {
			log.Error("unknown status filter", slog.String("status", statusStr))
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}

		now := time.Now()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to := now

		if fromStr != "" {
			parsed, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				http.Error(w, "invalid from date", http.StatusBadRequest)
				return
			}
			from = parsed
		}
		if toStr != "" {
			parsed, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				http.Error(w, "invalid to date", http.StatusBadRequest)
				return
			}
			// Inclusive upper bound for a date-only filter.
			to = parsed.AddDate(0, 0, 1)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orders, err := provider.GetOrders(ctx, status, from, to)
		if err != nil {
			log.Error("failed to list orders", slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseOrders{Orders: orders})
	}
}
