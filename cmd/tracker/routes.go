package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getassignments "workload-tracker/http-server/assignments/get"
	removeassignment "workload-tracker/http-server/assignments/remove"
	saveassignment "workload-tracker/http-server/assignments/save"
	getemployees "workload-tracker/http-server/employees/get"
	removeemployee "workload-tracker/http-server/employees/remove"
	saveemployee "workload-tracker/http-server/employees/save"
	exportdata "workload-tracker/http-server/export-data/export"
	exportworkload "workload-tracker/http-server/export-report/workload"
	"workload-tracker/http-server/import-data/upload"
	getprojects "workload-tracker/http-server/projects/get"
	removeproject "workload-tracker/http-server/projects/remove"
	saveproject "workload-tracker/http-server/projects/save"
	getweeklyhours "workload-tracker/http-server/weekly-hours/get"
	removeweeklyhours "workload-tracker/http-server/weekly-hours/remove"
	saveweeklyhours "workload-tracker/http-server/weekly-hours/save"
	"workload-tracker/http-server/workload/monthly"
	"workload-tracker/internal/config"
	"workload-tracker/internal/middleware/auth"
	"workload-tracker/internal/service/export"
	"workload-tracker/internal/service/importer"
	"workload-tracker/internal/service/report"
	"workload-tracker/internal/service/workload"
	"workload-tracker/internal/storage/mysql"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *mysql.Storage,
	importService *importer.Service,
	reportService *report.Service,
	workloadService *workload.Service,
	exportService *export.Service,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

		r.Get("/employees", getemployees.GetEmployees(log, storage))
		r.Post("/employees", saveemployee.SaveEmployee(log, storage))
		r.Delete("/employees/{id}", removeemployee.DeleteEmployee(log, storage))

		r.Get("/projects", getprojects.GetProjects(log, storage))
		r.Post("/projects", saveproject.SaveProject(log, storage))
		r.Delete("/projects/{id}", removeproject.DeleteProject(log, storage))

		r.Get("/employee_project_assignments", getassignments.GetAssignments(log, storage))
		r.Post("/assign_employee", saveassignment.SaveAssignment(log, storage))
		r.Delete("/assignments/{id}", removeassignment.DeleteAssignment(log, storage))

		r.Get("/weekly_hours", getweeklyhours.GetWeeklyHours(log, storage))
		r.Post("/record_actual_hours", saveweeklyhours.RecordHours(log, storage))
		r.Delete("/weekly_hours/{id}", removeweeklyhours.DeleteWeeklyHours(log, storage))

		r.Post("/import_data", upload.ImportData(log, importService))
		r.Get("/export_data", exportdata.ExportData(log, exportService))
		r.Get("/export_workload_excel", exportworkload.ExportWorkload(log, reportService))
		r.Get("/monthly_workload", monthly.GetMonthlyWorkload(log, workloadService))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
