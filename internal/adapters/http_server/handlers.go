package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"wandr_ingest/internal/app"
	"wandr_ingest/internal/domain"
)

type Handlers struct {
	Imp       *app.ImportService
	Q         *app.QueryService
	UploadDir string
}

type uploadResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	ProcessedRowsCount int      `json:"processedRowsCount"`
	SkippedRowsCount   int      `json:"skippedRowsCount"`
	Errors             []string `json:"errors,omitempty"`
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(2, 4))
		r.Post("/v1/uploads", h.uploadFile)
	})
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)
}

// uploadFile receives one export file per request, spools it to a temp
// file, runs the batch, and always removes the temp file afterwards.
func (h *Handlers) uploadFile(w http.ResponseWriter, r *http.Request) {
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, uploadResponse{Success: false, Message: "no file uploaded"})
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp(h.UploadDir, "upload-*"+filepath.Ext(hdr.Filename))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, uploadResponse{Success: false, Message: "failed to store upload"})
		return
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to delete uploaded file")
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		writeJSON(w, http.StatusInternalServerError, uploadResponse{Success: false, Message: "failed to store upload"})
		return
	}
	if err := tmp.Close(); err != nil {
		writeJSON(w, http.StatusInternalServerError, uploadResponse{Success: false, Message: "failed to store upload"})
		return
	}

	res, err := h.Imp.ProcessFile(r.Context(), path, r.FormValue("dialect"))
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, uploadResponse{
				Success:            false,
				Message:            "file rejected by validation",
				ProcessedRowsCount: res.ProcessedRows,
				SkippedRowsCount:   res.SkippedRows,
				Errors:             ve.Problems,
			})
			return
		}
		log.Error().Err(err).Str("file", hdr.Filename).Msg("batch failed")
		writeJSON(w, http.StatusInternalServerError, uploadResponse{
			Success:            false,
			Message:            err.Error(),
			ProcessedRowsCount: res.ProcessedRows,
			SkippedRowsCount:   res.SkippedRows,
		})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:            true,
		Message:            "File processed successfully!",
		ProcessedRowsCount: res.ProcessedRows,
		SkippedRowsCount:   res.SkippedRows,
		Errors:             res.Errors,
	})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to list hotels")
		return
	}
	type hotelJSON struct {
		ID             int64  `json:"id"`
		Name           string `json:"name"`
		InventoryCount int    `json:"inventoryCount"`
		BookingCount   int    `json:"bookingCount"`
	}
	out := make([]hotelJSON, 0, len(hotels))
	for _, hs := range hotels {
		out = append(out, hotelJSON{ID: hs.ID, Name: hs.Name, InventoryCount: hs.InventoryCount, BookingCount: hs.BookingCount})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bv, err := h.Q.GetBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load booking")
		return
	}
	writeJSON(w, http.StatusOK, bv)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}
