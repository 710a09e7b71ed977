package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"workload-tracker/internal/storage"
)

type ProjectsProvider interface {
	GetProjects(ctx context.Context, search string) ([]storage.ProjectDetails, error)
}

func GetProjects(log *slog.Logger, provider ProjectsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.get.GetProjects"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := provider.GetProjects(ctx, r.URL.Query().Get("q"))
		if err != nil {
			log.Error("failed to list projects", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if projects == nil {
			projects = []storage.ProjectDetails{}
		}
		render.JSON(w, r, projects)
	}
}
