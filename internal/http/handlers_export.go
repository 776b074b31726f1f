package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"fintrack/internal/export"
)

// maxRestoreBytes bounds the accepted backup upload size.
const maxRestoreBytes = 10 << 20

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := s.tracker.ExportCSV()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	blob, err := s.tracker.Backup()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.BackupFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	blob, err := io.ReadAll(io.LimitReader(r.Body, maxRestoreBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("read backup body: %w", err))
		return
	}

	if err := s.tracker.Restore(r.Context(), blob); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	slog.InfoContext(r.Context(), "Dataset restored via API", "bytes", len(blob))
	w.WriteHeader(http.StatusNoContent)
}
