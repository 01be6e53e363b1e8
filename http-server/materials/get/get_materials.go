package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"supply-golang/internal/storage"
)

type MaterialProvider interface {
	GetMaterials(ctx context.Context) ([]*storage.Material, error)
}

type ResponseMaterials struct {
	Materials []*storage.Material `json:"materials"`
	Error     string              `json:"error,omitempty"`
}

func GetMaterials(log *slog.Logger, provider MaterialProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.materials.GetMaterials"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		materials, err := provider.GetMaterials(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load materials")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseMaterials{Materials: materials})
	}
}
