package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"workload-tracker/internal/storage"
)

type EmployeeCreator interface {
	CreateEmployee(ctx context.Context, e storage.Employee) (int64, error)
}

type Request struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

var validate = validator.New()

func SaveEmployee(log *slog.Logger, creator EmployeeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.save.SaveEmployee"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Missing or invalid employee data", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateEmployee(ctx, storage.Employee{Name: req.Name, Email: req.Email, Role: req.Role})
		if errors.Is(err, storage.ErrExists) {
			http.Error(w, "Employee with this email already exists.", http.StatusConflict)
			return
		}
		if err != nil {
			log.Error("failed to create employee", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"message": "Employee added successfully!",
			"employee": storage.Employee{
				ID:    id,
				Name:  req.Name,
				Email: req.Email,
				Role:  req.Role,
			},
		})
	}
}
