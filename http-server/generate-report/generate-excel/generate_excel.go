package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ShortageReportGenerator interface {
	GenerateShortageReport(ctx context.Context) ([]byte, error)
}

func GenerateShortageExcel(log *slog.Logger, gen ShortageReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateShortageExcel"

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		data, err := gen.GenerateShortageReport(ctx)
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("shortage-report-%s.xlsx", time.Now().Format("2006-01-02"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))

		if _, err := w.Write(data); err != nil {
			log.Error("failed to write report", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
