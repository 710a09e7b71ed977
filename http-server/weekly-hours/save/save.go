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

type HoursRecorder interface {
	GetEmployeeByID(ctx context.Context, id int64) (*storage.Employee, error)
	GetProjectByID(ctx context.Context, id int64) (*storage.Project, error)
	GetAssignmentByPair(ctx context.Context, employeeID, projectID int64) (*storage.Assignment, error)
	CreateAssignment(ctx context.Context, a storage.Assignment) (int64, error)
	GetWeeklyHoursFact(ctx context.Context, assignmentID int64, weekStart time.Time, functionName string) (*storage.WeeklyHours, error)
	CreateWeeklyHours(ctx context.Context, wh storage.WeeklyHours) (int64, error)
	UpdateWeeklyHoursWorked(ctx context.Context, id int64, hoursWorked int) error
}

type Request struct {
	EmployeeID    int64  `json:"employee_id" validate:"required"`
	ProjectID     int64  `json:"project_id" validate:"required"`
	WeekStartDate string `json:"week_start_date" validate:"required"`
	HoursWorked   *int   `json:"hours_worked" validate:"required"`
	FunctionName  string `json:"function_name" validate:"required"`
}

var validate = validator.New()

// RecordHours upserts an actual-hours fact for one employee, project,
// function and week. A missing assignment is created on the fly with a
// 40-hour default spanning the current month through the same month next
// year.
func RecordHours(log *slog.Logger, recorder HoursRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.weeklyhours.save.RecordHours"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Missing actual hours data. All fields are required.", http.StatusBadRequest)
			return
		}

		weekStart, err := time.Parse("2006-01-02", req.WeekStartDate)
		if err != nil {
			http.Error(w, "Invalid date format for week_start_date. Use YYYY-MM-DD.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		assignment, err := recorder.GetAssignmentByPair(ctx, req.EmployeeID, req.ProjectID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to look up assignment", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		var assignmentID int64
		if assignment != nil {
			assignmentID = assignment.ID
		} else {
			assignmentID, err = createDefaultAssignment(ctx, recorder, req.EmployeeID, req.ProjectID)
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Employee or Project not found for on-the-fly assignment.", http.StatusNotFound)
				return
			}
			if err != nil {
				log.Error("failed to create default assignment", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		existing, err := recorder.GetWeeklyHoursFact(ctx, assignmentID, weekStart, req.FunctionName)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to look up weekly hours", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if existing != nil {
			if err := recorder.UpdateWeeklyHoursWorked(ctx, existing.ID, *req.HoursWorked); err != nil {
				log.Error("failed to update weekly hours", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			render.JSON(w, r, map[string]interface{}{
				"message": "Actual hours updated successfully!",
				"record":  *req.HoursWorked,
			})
			return
		}

		_, err = recorder.CreateWeeklyHours(ctx, storage.WeeklyHours{
			AssignmentID:  assignmentID,
			WeekStartDate: weekStart,
			HoursWorked:   *req.HoursWorked,
			FunctionName:  req.FunctionName,
		})
		if errors.Is(err, storage.ErrExists) {
			http.Error(w, "Duplicate entry: Actual hours for this employee, project, function, and week already exist.", http.StatusConflict)
			return
		}
		if err != nil {
			log.Error("failed to record weekly hours", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"message": "Actual hours recorded successfully!",
			"record":  *req.HoursWorked,
		})
	}
}

func createDefaultAssignment(ctx context.Context, recorder HoursRecorder, employeeID, projectID int64) (int64, error) {
	if _, err := recorder.GetEmployeeByID(ctx, employeeID); err != nil {
		return 0, err
	}
	if _, err := recorder.GetProjectByID(ctx, projectID); err != nil {
		return 0, err
	}

	now := time.Now()
	end := now.AddDate(1, 0, 0)

	return recorder.CreateAssignment(ctx, storage.Assignment{
		EmployeeID:           employeeID,
		ProjectID:            projectID,
		AssignedHoursPerWeek: storage.NormalWeeklyHours,
		AssignedStartMonth:   now.Month().String(),
		AssignedStartYear:    now.Year(),
		AssignedEndMonth:     end.Month().String(),
		AssignedEndYear:      end.Year(),
	})
}
