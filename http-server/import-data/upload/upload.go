package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"workload-tracker/internal/service/importer"
)

const maxUploadBytes = 32 << 20

type Importer interface {
	Import(ctx context.Context, file io.Reader, dataType string) (*importer.Result, error)
}

// ImportData accepts a spreadsheet upload plus a data-type selector and runs
// the matching import path. Structural problems reject the request up front;
// everything row-level comes back as notes inside a successful result.
func ImportData(log *slog.Logger, imp Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.import-data.ImportData"

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "No file part", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("excel_file")
		if err != nil {
			http.Error(w, "No file part", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename == "" {
			http.Error(w, "No selected file", http.StatusBadRequest)
			return
		}

		dataType := r.FormValue("data_type")
		if dataType == "" {
			http.Error(w, "No data type selected for import", http.StatusBadRequest)
			return
		}

		name := strings.ToLower(header.Filename)
		if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
			http.Error(w, "Invalid file type. Please upload an Excel file (.xlsx or .xls).", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		result, err := imp.Import(ctx, file, dataType)
		if errors.Is(err, importer.ErrUnknownDataType) {
			http.Error(w, "Invalid data type specified for import", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("import failed before row processing",
				slog.String("op", op),
				slog.String("file", header.Filename),
				slog.String("error", err.Error()))
			http.Error(w, "Unable to read the uploaded file", http.StatusBadRequest)
			return
		}

		log.Info("import finished",
			slog.String("data_type", dataType),
			slog.Int("imported", result.Imported),
			slog.Int("skipped", result.Skipped),
			slog.Int("notes", len(result.Notes)))

		render.JSON(w, r, result)
	}
}
