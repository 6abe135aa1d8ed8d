package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
)

// NewDownloadRouter serves exports as plain file downloads. Mount it under
// a prefix such as /exports:
//
//	GET /{calculationID}/csv
//	GET /{calculationID}/xlsx
func NewDownloadRouter(svc *CalculationService) chi.Router {
	r := chi.NewRouter()

	r.Get("/{calculationID}/csv", func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.ExportCSV(r.Context(), connect.NewRequest(&ExportCSVRequest{
			CalculationID: chi.URLParam(r, "calculationID"),
		}))
		if err != nil {
			writeDownloadError(w, err)
			return
		}
		writeDownload(w, resp.Msg.FileName, "text/csv; charset=utf-8", []byte(resp.Msg.Content))
	})

	r.Get("/{calculationID}/xlsx", func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.ExportXLSX(r.Context(), connect.NewRequest(&ExportXLSXRequest{
			CalculationID: chi.URLParam(r, "calculationID"),
		}))
		if err != nil {
			writeDownloadError(w, err)
			return
		}
		writeDownload(w, resp.Msg.FileName,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Msg.Content)
	})

	return r
}

func writeDownload(w http.ResponseWriter, fileName, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(fileName)))
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write download", "file_name", fileName, "error", err)
	}
}

func writeDownloadError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch connect.CodeOf(err) {
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	}
	http.Error(w, http.StatusText(status), status)
}
