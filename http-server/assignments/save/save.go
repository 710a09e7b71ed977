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

type AssignmentCreator interface {
	CreateAssignment(ctx context.Context, a storage.Assignment) (int64, error)
}

type Request struct {
	EmployeeID           int64 `json:"employee_id" validate:"required"`
	ProjectID            int64 `json:"project_id" validate:"required"`
	AssignedHoursPerWeek int   `json:"assigned_hours_per_week" validate:"required,min=1"`
	AssignedStartMonth   int   `json:"assigned_start_month" validate:"required"`
	AssignedStartYear    int   `json:"assigned_start_year" validate:"required"`
	AssignedEndMonth     int   `json:"assigned_end_month" validate:"required"`
	AssignedEndYear      int   `json:"assigned_end_year" validate:"required"`
}

var validate = validator.New()

func SaveAssignment(log *slog.Logger, creator AssignmentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.save.SaveAssignment"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Missing assignment data. All fields are required.", http.StatusBadRequest)
			return
		}

		startMonthName, okStart := storage.MonthName(req.AssignedStartMonth)
		endMonthName, okEnd := storage.MonthName(req.AssignedEndMonth)
		if !okStart || !okEnd {
			http.Error(w, "Invalid month number provided.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateAssignment(ctx, storage.Assignment{
			EmployeeID:           req.EmployeeID,
			ProjectID:            req.ProjectID,
			AssignedHoursPerWeek: req.AssignedHoursPerWeek,
			AssignedStartMonth:   startMonthName,
			AssignedStartYear:    req.AssignedStartYear,
			AssignedEndMonth:     endMonthName,
			AssignedEndYear:      req.AssignedEndYear,
		})
		if errors.Is(err, storage.ErrExists) {
			http.Error(w, "Assignment already exists or another database conflict.", http.StatusConflict)
			return
		}
		if err != nil {
			log.Error("failed to create assignment", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"message":       "Employee assigned to project successfully!",
			"assignment_id": id,
		})
	}
}
