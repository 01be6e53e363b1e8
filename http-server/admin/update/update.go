package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"supply-golang/internal/storage"
)

type StockUpdater interface {
	UpdateMaterialsStock(ctx context.Context, updates []storage.UpdateMaterialStock) error
}

// UpdateMaterialsStockAdmin sets absolute stock levels on the material
// ledger, e.g. after a physical inventory count. Admin only.
func UpdateMaterialsStockAdmin(log *slog.Logger, updater StockUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.UpdateMaterialsStockAdmin"

		var updates []storage.UpdateMaterialStock
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		for _, u := range updates {
			if u.CurrentStock < 0 {
				http.Error(w, "Stock must be non-negative", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.UpdateMaterialsStock(ctx, updates); err != nil {
			log.Error("failed to update stock levels", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("stock levels updated", slog.Int("materials", len(updates)))

		w.WriteHeader(http.StatusOK)
	}
}
