package remove

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"workload-tracker/internal/storage"
)

type WeeklyHoursRemover interface {
	GetWeeklyHoursRowByID(ctx context.Context, id int64) (*storage.WeeklyHoursRow, error)
	DeleteWeeklyHours(ctx context.Context, id int64) error
}

func DeleteWeeklyHours(log *slog.Logger, remover WeeklyHoursRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.weeklyhours.remove.DeleteWeeklyHours"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid weekly hours id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		row, err := remover.GetWeeklyHoursRowByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Weekly hours record not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to get weekly hours record", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if err := remover.DeleteWeeklyHours(ctx, id); err != nil {
			log.Error("failed to delete weekly hours record", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{
			"message": fmt.Sprintf(
				"Weekly hours record for '%s' on '%s' deleted successfully",
				row.EmployeeName, row.ProjectName,
			),
		})
	}
}
