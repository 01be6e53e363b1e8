package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"supply-golang/internal/storage"
)

type MaterialAdminProvider interface {
	GetMaterials(ctx context.Context) ([]*storage.Material, error)
}

func GetMaterialsAdmin(log *slog.Logger, provider MaterialAdminProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetMaterialsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		materials, err := provider.GetMaterials(ctx)
		if err != nil {
			log.Error("failed to load materials", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, materials)
	}
}
