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

type ProjectCreator interface {
	CreateProject(ctx context.Context, p storage.Project) (int64, error)
}

type Request struct {
	Name       string `json:"name" validate:"required"`
	StartMonth int    `json:"start_month" validate:"required,min=1,max=12"`
	StartYear  int    `json:"start_year" validate:"required"`
	EndMonth   int    `json:"end_month" validate:"required,min=1,max=12"`
	EndYear    int    `json:"end_year" validate:"required"`
}

var validate = validator.New()

// SaveProject creates a project from month numbers, deriving the inclusive
// duration in months.
func SaveProject(log *slog.Logger, creator ProjectCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.save.SaveProject"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Missing project details. Name, start/end month/year are required.", http.StatusBadRequest)
			return
		}

		startMonthName, _ := storage.MonthName(req.StartMonth)
		endMonthName, _ := storage.MonthName(req.EndMonth)

		durationMonths := (req.EndYear-req.StartYear)*12 + (req.EndMonth - req.StartMonth) + 1
		if durationMonths <= 0 {
			http.Error(w, "End date must be after start date.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateProject(ctx, storage.Project{
			Name:           req.Name,
			DurationMonths: durationMonths,
			StartMonth:     startMonthName,
			StartYear:      req.StartYear,
			EndMonth:       endMonthName,
			EndYear:        req.EndYear,
		})
		if errors.Is(err, storage.ErrExists) {
			http.Error(w, "Project with this name already exists.", http.StatusConflict)
			return
		}
		if err != nil {
			log.Error("failed to create project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"message":    "Project created successfully!",
			"project_id": id,
		})
	}
}
