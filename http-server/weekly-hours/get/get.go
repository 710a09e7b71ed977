package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"workload-tracker/internal/storage"
)

type WeeklyHoursProvider interface {
	GetWeeklyHours(ctx context.Context, filter storage.WeeklyHoursFilter) ([]storage.WeeklyHoursRow, error)
}

// GetWeeklyHours lists recorded hours, optionally filtered by week range
// (start_date, end_date as YYYY-MM-DD) and a search term over names.
func GetWeeklyHours(log *slog.Logger, provider WeeklyHoursProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.weeklyhours.get.GetWeeklyHours"

		var filter storage.WeeklyHoursFilter
		filter.Search = r.URL.Query().Get("q")

		if raw := r.URL.Query().Get("start_date"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				http.Error(w, "Invalid start_date format. Use YYYY-MM-DD.", http.StatusBadRequest)
				return
			}
			filter.StartDate = &t
		}
		if raw := r.URL.Query().Get("end_date"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				http.Error(w, "Invalid end_date format. Use YYYY-MM-DD.", http.StatusBadRequest)
				return
			}
			filter.EndDate = &t
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := provider.GetWeeklyHours(ctx, filter)
		if err != nil {
			log.Error("failed to get weekly hours", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if rows == nil {
			rows = []storage.WeeklyHoursRow{}
		}

		render.JSON(w, r, rows)
	}
}
