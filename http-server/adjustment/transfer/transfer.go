package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"supply-golang/internal/service/allocation"
)

type Transferrer interface {
	TransferToPreparation(ctx context.Context, excludeMaterialCodes []string) (*allocation.TransferResult, error)
}

type Request struct {
	ExcludeMaterialCodes []string `json:"exclude_material_codes"`
}

type Response struct {
	TransferredCount int      `json:"transferred_count"`
	Message          string   `json:"message"`
	BlockedMaterials []string `json:"blocked_materials,omitempty"`
	Error            string   `json:"error,omitempty"`
}

func TransferToPreparation(log *slog.Logger, transferrer Transferrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.adjustment.TransferToPreparation"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		result, err := transferrer.TransferToPreparation(ctx, req.ExcludeMaterialCodes)
		if err != nil {
			if errors.Is(err, allocation.ErrInsufficientStockForCommit) {
				var blocked *allocation.CommitBlockedError
				resp := Response{Error: err.Error()}
				if errors.As(err, &blocked) {
					resp.BlockedMaterials = blocked.MaterialCodes
				}
				log.Warn("commit blocked by deficit materials", slog.Any("materials", resp.BlockedMaterials))
				w.WriteHeader(http.StatusConflict)
				render.JSON(w, r, resp)
				return
			}

			log.Error("transfer failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("orders transferred to preparation", slog.Int("count", result.TransferredCount))

		render.JSON(w, r, Response{
			TransferredCount: result.TransferredCount,
			Message:          "orders transferred to preparation",
		})
	}
}
