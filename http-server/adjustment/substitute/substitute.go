package substitute

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

type SubstitutionApplier interface {
	ApplySubstitution(ctx context.Context, materialCode, alternateCode string, quantity int) (*allocation.GroupView, error)
}

type Request struct {
	MaterialCode          string `json:"material_code"`
	AlternateMaterialCode string `json:"alternate_material_code"`
	AlternateQuantity     int    `json:"alternate_quantity"`
}

type Response struct {
	Message string                `json:"message"`
	Group   *allocation.GroupView `json:"group,omitempty"`
	Error   string                `json:"error,omitempty"`
}

func ApplySubstitution(log *slog.Logger, applier SubstitutionApplier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.adjustment.ApplySubstitution"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		group, err := applier.ApplySubstitution(ctx, req.MaterialCode, req.AlternateMaterialCode, req.AlternateQuantity)
		if err != nil {
			log.Error("substitution rejected", slog.String("op", op), slog.String("material", req.MaterialCode), slog.String("error", err.Error()))

			switch {
			case errors.Is(err, allocation.ErrInvalidSubstitution):
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Error: err.Error()})
			case errors.Is(err, allocation.ErrInsufficientAlternateStock):
				w.WriteHeader(http.StatusConflict)
				render.JSON(w, r, Response{Error: err.Error()})
			default:
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		log.Info("substitution applied",
			slog.String("material", req.MaterialCode),
			slog.String("alternate", req.AlternateMaterialCode),
			slog.Int("quantity", req.AlternateQuantity),
		)

		render.JSON(w, r, Response{Message: "substitution applied", Group: group})
	}
}
