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

type ProjectRemover interface {
	GetProjectByID(ctx context.Context, id int64) (*storage.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

func DeleteProject(log *slog.Logger, remover ProjectRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.remove.DeleteProject"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid project id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		project, err := remover.GetProjectByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("failed to get project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		err = remover.DeleteProject(ctx, id)
		var depErr *storage.DependentsError
		if errors.As(err, &depErr) {
			http.Error(w, fmt.Sprintf(
				"Cannot delete project. It has %d active assignment(s). Delete assignments first.",
				depErr.Count,
			), http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("failed to delete project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{
			"message": fmt.Sprintf("Project '%s' deleted successfully", project.Name),
		})
	}
}
