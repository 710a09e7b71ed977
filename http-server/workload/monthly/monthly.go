package monthly

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"workload-tracker/internal/service/workload"
)

const defaultNumMonths = 6

type OverviewProvider interface {
	MonthlyOverview(ctx context.Context, startMonth, startYear, numMonths int, search string) (*workload.Overview, error)
}

// GetMonthlyWorkload returns per-employee load over a window of months,
// defaulting to six months starting from the current one.
func GetMonthlyWorkload(log *slog.Logger, provider OverviewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workload.monthly.GetMonthlyWorkload"

		now := time.Now()
		startMonth := queryInt(r, "start_month", int(now.Month()))
		startYear := queryInt(r, "start_year", now.Year())
		numMonths := queryInt(r, "num_months", defaultNumMonths)

		if startMonth < 1 || startMonth > 12 {
			http.Error(w, "Invalid start_month. Must be between 1 and 12.", http.StatusBadRequest)
			return
		}
		if numMonths < 1 {
			http.Error(w, "Invalid num_months. Must be at least 1.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		overview, err := provider.MonthlyOverview(ctx, startMonth, startYear, numMonths, r.URL.Query().Get("q"))
		if err != nil {
			log.Error("failed to build monthly workload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, overview)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
