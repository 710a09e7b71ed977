package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	exportsvc "workload-tracker/internal/service/export"
)

type Exporter interface {
	Export(ctx context.Context, exportType string) ([]byte, error)
}

// ExportData streams a flat workbook for one entity type. The weekly
// hours sheet uses the same column names the import path recognizes, so
// an exported file can be re-imported as-is.
func ExportData(log *slog.Logger, exporter Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.exportdata.export.ExportData"

		exportType := r.URL.Query().Get("type")
		if exportType == "" {
			exportType = exportsvc.TypeWeeklyHours
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		data, err := exporter.Export(ctx, exportType)
		if errors.Is(err, exportsvc.ErrUnknownExportType) {
			http.Error(w, "Invalid export type", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("failed to export data", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_export.xlsx"`, exportType))

		if _, err := w.Write(data); err != nil {
			log.Error("failed to write export", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
