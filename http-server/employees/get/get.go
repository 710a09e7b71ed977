package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"workload-tracker/internal/storage"
)

type EmployeesProvider interface {
	GetEmployees(ctx context.Context, search string) ([]storage.Employee, error)
}

func GetEmployees(log *slog.Logger, provider EmployeesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.get.GetEmployees"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		employees, err := provider.GetEmployees(ctx, r.URL.Query().Get("q"))
		if err != nil {
			log.Error("failed to list employees", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if employees == nil {
			employees = []storage.Employee{}
		}
		render.JSON(w, r, employees)
	}
}
