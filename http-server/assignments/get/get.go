package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"workload-tracker/internal/storage"
)

type AssignmentsProvider interface {
	GetAssignmentsGrouped(ctx context.Context, search string) ([]storage.EmployeeAssignments, error)
}

// GetAssignments returns all assignments grouped per employee.
func GetAssignments(log *slog.Logger, provider AssignmentsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.get.GetAssignments"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		grouped, err := provider.GetAssignmentsGrouped(ctx, r.URL.Query().Get("q"))
		if err != nil {
			log.Error("failed to get assignments", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if grouped == nil {
			grouped = []storage.EmployeeAssignments{}
		}

		render.JSON(w, r, grouped)
	}
}
