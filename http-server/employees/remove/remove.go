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

type EmployeeRemover interface {
	GetEmployeeByID(ctx context.Context, id int64) (*storage.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// DeleteEmployee removes an employee, refusing while assignments still
// reference them.
func DeleteEmployee(log *slog.Logger, remover EmployeeRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.remove.DeleteEmployee"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid employee id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		employee, err := remover.GetEmployeeByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to load employee", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		err = remover.DeleteEmployee(ctx, id)
		var depErr *storage.DependentsError
		if errors.As(err, &depErr) {
			msg := fmt.Sprintf("Cannot delete employee. They have %d active assignment(s). Delete assignments first.", depErr.Count)
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("failed to delete employee", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{
			"message": fmt.Sprintf("Employee '%s' deleted successfully", employee.Name),
		})
	}
}
