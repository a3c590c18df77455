package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"barpulse/internal/config"
	apierrors "barpulse/internal/errors"
	"barpulse/internal/services"
	"barpulse/pkg/contracts/domain"
)

type categoryCtxKey struct{}

// InventoryHandler handles inventory HTTP requests with RFC 7807 compliance
type InventoryHandler struct {
	service      *services.InventoryService
	upload       config.UploadConfig
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service *services.InventoryService, upload config.UploadConfig, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *InventoryHandler {
	return &InventoryHandler{
		service:      service,
		upload:       upload,
		logger:       logger.With(slog.String("component", "inventory_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// UpdateRowRequest carries the edits for one row.
type UpdateRowRequest struct {
	Changes map[string]any `json:"changes" validate:"required,min=1"`
}

// Routes returns the inventory routes with proper Chi patterns
func (h *InventoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/{category}", func(r chi.Router) {
		r.Use(h.CategoryCtx)

		r.Post("/import", h.Import)
		r.Get("/", h.GetDataset)
		r.Delete("/", h.Reset)
		r.Post("/recalculate", h.Recalculate)
		r.Get("/export", h.Export)

		r.Post("/rows", h.AddRow)
		r.Put("/rows/{index}", h.UpdateRow)
		r.Delete("/rows/{index}", h.DeleteRow)
	})

	return r
}

// CategoryCtx middleware validates the category parameter
func (h *InventoryHandler) CategoryCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category, err := domain.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("category", err.Error()))
			return
		}
		ctx := context.WithValue(r.Context(), categoryCtxKey{}, category)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func categoryFrom(ctx context.Context) domain.Category {
	category, _ := ctx.Value(categoryCtxKey{}).(domain.Category)
	return category
}

// Import handles POST /api/inventory/{category}/import
func (h *InventoryHandler) Import(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.upload.MaxSizeBytes)
	if err := r.ParseMultipartForm(h.upload.MaxSizeBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file",
			fmt.Sprintf("upload exceeds %d bytes or is not multipart", h.upload.MaxSizeBytes)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	if !h.allowedExtension(header.Filename) {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file",
			fmt.Sprintf("unsupported file type %q, expected one of %s",
				filepath.Ext(header.Filename), strings.Join(h.upload.Extensions, ", "))))
		return
	}

	h.logger.InfoContext(r.Context(), "processing upload",
		slog.String("request_id", reqID),
		slog.String("category", string(category)),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	ds, err := h.service.Import(r.Context(), category, header.Filename, file)
	if err != nil {
		if domain.IsFormatError(err) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUnreadableUpload(err))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, datasetResponse(ds))
}

// GetDataset handles GET /api/inventory/{category}
func (h *InventoryHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	ds, err := h.service.Dataset(r.Context(), category)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, datasetResponse(ds))
}

// UpdateRow handles PUT /api/inventory/{category}/rows/{index}
func (h *InventoryHandler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	index, err := h.rowIndex(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("index", err.Error()))
		return
	}

	var req UpdateRowRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "request body must be valid JSON"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("changes", "at least one change is required"))
		return
	}

	ds, err := h.service.UpdateRow(r.Context(), category, index, req.Changes)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, datasetResponse(ds))
}

// AddRow handles POST /api/inventory/{category}/rows
func (h *InventoryHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	ds, index, err := h.service.AddRow(r.Context(), category)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	response := datasetResponse(ds)
	response["row_index"] = index
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response)
}

// DeleteRow handles DELETE /api/inventory/{category}/rows/{index}
func (h *InventoryHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	index, err := h.rowIndex(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("index", err.Error()))
		return
	}

	ds, err := h.service.DeleteRow(r.Context(), category, index)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, datasetResponse(ds))
}

// Recalculate handles POST /api/inventory/{category}/recalculate
func (h *InventoryHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	ds, err := h.service.Recalculate(r.Context(), category)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, datasetResponse(ds))
}

// Export handles GET /api/inventory/{category}/export
func (h *InventoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	filename, data, err := h.service.Export(r.Context(), category)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Reset handles DELETE /api/inventory/{category}
func (h *InventoryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	category := categoryFrom(r.Context())

	if err := h.service.Reset(r.Context(), category); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// handleServiceError maps service sentinels to API errors.
func (h *InventoryHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrDatasetNotFound):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusNotFound, "DATASET_NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrRowNotFound):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusNotFound, "ROW_NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrDerivedColumn):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, "DERIVED_COLUMN", err.Error()))
	case errors.Is(err, services.ErrUnknownColumn):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, "UNKNOWN_COLUMN", err.Error()))
	case errors.Is(err, services.ErrInvalidInput):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, "INVALID_INPUT", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

func (h *InventoryHandler) rowIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("row index must be a non-negative integer, got %q", raw)
	}
	return index, nil
}

func (h *InventoryHandler) allowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range h.upload.Extensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

func datasetResponse(ds *domain.Dataset) map[string]any {
	return map[string]any{
		"status":   "success",
		"category": ds.Category,
		"columns":  ds.Columns,
		"rows":     ds.Rows,
		"count":    len(ds.Rows),
	}
}
