package workload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"workload-tracker/internal/service/report"
)

const reportFilename = "Detailed_Actual_Hours_Report.xlsx"

type ReportGenerator interface {
	Generate(ctx context.Context) ([]byte, error)
}

// ExportWorkload streams the crosstab actual-hours workbook.
func ExportWorkload(log *slog.Logger, generator ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.exportreport.workload.ExportWorkload"

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		data, err := generator.Generate(ctx)
		if errors.Is(err, report.ErrNoData) {
			http.Error(w, "No data available to export.", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to generate workload report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+reportFilename+`"`)

		if _, err := w.Write(data); err != nil {
			log.Error("failed to write workload report", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
