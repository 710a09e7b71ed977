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

type AssignmentRemover interface {
	GetAssignmentByID(ctx context.Context, id int64) (*storage.AssignmentDetails, error)
	DeleteAssignment(ctx context.Context, id int64) error
}

func DeleteAssignment(log *slog.Logger, remover AssignmentRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.remove.DeleteAssignment"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid assignment id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		details, err := remover.GetAssignmentByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Assignment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to get assignment", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		err = remover.DeleteAssignment(ctx, id)
		var depErr *storage.DependentsError
		if errors.As(err, &depErr) {
			http.Error(w, fmt.Sprintf(
				"Cannot delete assignment. It has %d weekly hour record(s). Delete weekly hours first.",
				depErr.Count,
			), http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("failed to delete assignment", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{
			"message": fmt.Sprintf(
				"Assignment for '%s' on '%s' deleted successfully",
				details.EmployeeName, details.ProjectName,
			),
		})
	}
}
