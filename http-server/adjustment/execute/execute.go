package execute

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

type Adjuster interface {
	ExecuteAdjustment(ctx context.Context, materialCode string, selectedProductCodes []string) (*allocation.AdjustmentResult, error)
}

type Request struct {
	MaterialCode         string   `json:"material_code"`
	SelectedProductCodes []string `json:"selected_product_codes"`
}

type Response struct {
	Adjusted          bool     `json:"adjusted"`
	CancelledOrderIDs []string `json:"cancelled_order_ids"`
	StillDeficit      bool     `json:"still_deficit"`
	Message           string   `json:"message,omitempty"`
}

func ExecuteAdjustment(log *slog.Logger, adjuster Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.adjustment.ExecuteAdjustment"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		if req.MaterialCode == "" {
			http.Error(w, "Missing material_code", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := adjuster.ExecuteAdjustment(ctx, req.MaterialCode, req.SelectedProductCodes)
		if err != nil {
			// An empty selection is a reported no-op, not a failure.
			if errors.Is(err, allocation.ErrNothingToCancel) {
				log.Info("nothing to cancel", slog.String("material", req.MaterialCode))
				render.JSON(w, r, Response{
					Adjusted:          false,
					CancelledOrderIDs: []string{},
					Message:           "nothing to cancel",
				})
				return
			}

			log.Error("adjustment failed", slog.String("op", op), slog.String("material", req.MaterialCode), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("orders cancelled for adjustment",
			slog.String("material", req.MaterialCode),
			slog.Int("cancelled", len(result.CancelledOrderIDs)),
			slog.Bool("still_deficit", result.StillDeficit),
		)

		render.JSON(w, r, Response{
			Adjusted:          result.Adjusted,
			CancelledOrderIDs: result.CancelledOrderIDs,
			StillDeficit:      result.StillDeficit,
		})
	}
}
