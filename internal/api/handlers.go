// Package api wires the HTTP surface: health probes and the PDF upload
// endpoints that produce BOQ extractions.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"boqgen/internal/compliance"
	"boqgen/internal/config"
	"boqgen/internal/models"
	"boqgen/internal/pdftext"
	"boqgen/internal/report"
	"boqgen/internal/service/ai"
	"boqgen/internal/service/boq"
)

const apiVersion = "1.0.0"

// Report rendering is a collaborator, not part of the extraction pipeline;
// indirected so tests can observe or replace it.
var (
	reportWritePDF   = report.WritePDF
	reportWriteExcel = report.WriteExcel
)

// Handler wires HTTP routes to the extraction pipeline. All dependencies are
// injected at startup and read-only afterwards.
type Handler struct {
	cfg       *config.Config
	extractor *pdftext.Extractor
	boq       *boq.Service
	validator *compliance.Validator
}

// NewHandler constructs a Handler instance.
func NewHandler(cfg *config.Config, extractor *pdftext.Extractor, svc *boq.Service, validator *compliance.Validator) *Handler {
	return &Handler{
		cfg:       cfg,
		extractor: extractor,
		boq:       svc,
		validator: validator,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.root)
	router.GET("/health", h.health)

	api := router.Group("/api")
	api.GET("/test", h.testBOQ)
	api.POST("/upload-pdf", h.uploadPDF)
	api.POST("/upload-pdfs", h.uploadPDFs)
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "BOQ Generator API is running",
		"version":   apiVersion,
		"status":    "healthy",
		"mock_mode": h.boq.MockMode(),
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"environment":           h.cfg.Environment,
		"credential_configured": h.cfg.HasCredential(),
		"mock_mode":             h.boq.MockMode(),
	})
}

// testBOQ returns the fixed mock result so clients can smoke-test the
// contract without uploading anything.
func (h *Handler) testBOQ(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":    "Test endpoint working",
		"mock_mode":  h.boq.MockMode(),
		"sample_boq": ai.MockResult("test.pdf"),
	})
}

// readUpload pulls the whole upload into memory. Nothing is written to
// durable storage; the buffer is dropped when the handler returns.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// checkUpload applies the extension and size gates shared by both endpoints.
// The returned message is empty when the upload passes.
func (h *Handler) checkUpload(file *multipart.FileHeader) string {
	if !h.cfg.AllowedExtension(file.Filename) {
		return "Invalid file type. Only PDF files are allowed."
	}
	if file.Size > h.cfg.MaxFileSize {
		return fmt.Sprintf("File size exceeds maximum allowed size of %.1fMB",
			float64(h.cfg.MaxFileSize)/(1024*1024))
	}
	return ""
}

// reportFormat validates the optional ?report= query parameter. ok is false
// for unsupported values.
func reportFormat(c *gin.Context) (string, bool) {
	format := c.Query("report")
	switch format {
	case "", "pdf", "xlsx":
		return format, true
	default:
		return "", false
	}
}

// uploadPDF handles the single-file endpoint. Failures abort the request
// with an HTTP error status and a human-readable detail string.
func (h *Handler) uploadPDF(c *gin.Context) {
	format, ok := reportFormat(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported report format. Use pdf or xlsx."})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file uploaded."})
		return
	}
	if msg := h.checkUpload(file); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
		return
	}

	data, err := readUpload(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Could not read uploaded file: %v", err)})
		return
	}
	if !h.extractor.IsValid(data) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid PDF file. The file may be corrupted or not a valid PDF."})
		return
	}

	result, _, err := h.boq.GenerateFromPDF(c.Request.Context(), file.Filename, data)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoText) || errors.Is(err, pdftext.ErrCorruptPDF) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fmt.Sprintf("Failed to extract text from PDF: %v", err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Failed to process PDF with AI: %v", err)})
		return
	}

	if format != "" {
		h.serveReport(c, format, file.Filename, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "BOQ extracted successfully",
		"data":       result,
		"compliance": h.validator.Validate(result),
	})
}

// uploadPDFs handles the batch endpoint. Files are processed sequentially
// and failures stay isolated per file: each entry carries either a boq or an
// error, and one bad file never aborts the batch.
func (h *Handler) uploadPDFs(c *gin.Context) {
	format, ok := reportFormat(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported report format. Use pdf or xlsx."})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid multipart form."})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No files uploaded."})
		return
	}

	outcomes := make([]models.UploadOutcome, 0, len(files))
	for _, file := range files {
		outcomes = append(outcomes, h.processOne(c.Request.Context(), file))
	}

	if format != "" {
		if single := soleSuccess(outcomes); single != nil {
			h.serveReport(c, format, single.Filename, single.BOQ)
			return
		}
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.BOQ != nil {
			succeeded++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Processed %d of %d files", succeeded, len(outcomes)),
		"data":    outcomes,
	})
}

// processOne runs the full per-file pipeline and converts every failure,
// panics included, into that file's error entry.
func (h *Handler) processOne(ctx context.Context, file *multipart.FileHeader) (outcome models.UploadOutcome) {
	outcome = models.UploadOutcome{Filename: file.Filename}
	defer func() {
		if rec := recover(); rec != nil {
			outcome = models.UploadOutcome{
				Filename: file.Filename,
				Error:    fmt.Sprintf("unexpected error: %v", rec),
			}
		}
	}()

	if msg := h.checkUpload(file); msg != "" {
		outcome.Error = msg
		return outcome
	}

	data, err := readUpload(file)
	if err != nil {
		outcome.Error = fmt.Sprintf("Could not read uploaded file: %v", err)
		return outcome
	}
	if !h.extractor.IsValid(data) {
		outcome.Error = "Invalid PDF file. The file may be corrupted or not a valid PDF."
		return outcome
	}

	result, _, err := h.boq.GenerateFromPDF(ctx, file.Filename, data)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.BOQ = result
	outcome.Compliance = h.validator.Validate(result)
	return outcome
}

// soleSuccess returns the single successful outcome, or nil when the batch
// has zero or more than one.
func soleSuccess(outcomes []models.UploadOutcome) *models.UploadOutcome {
	var found *models.UploadOutcome
	for i := range outcomes {
		if outcomes[i].BOQ == nil {
			continue
		}
		if found != nil {
			return nil
		}
		found = &outcomes[i]
	}
	return found
}

// serveReport renders the result into a downloadable document held in a
// per-request temp dir, removed once the response is written.
func (h *Handler) serveReport(c *gin.Context, format, filename string, result *models.BOQResult) {
	dir, err := os.MkdirTemp("", "boqgen-report-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Could not create report directory: %v", err)})
		return
	}
	defer os.RemoveAll(dir)

	var path string
	switch format {
	case "pdf":
		path, err = reportWritePDF(dir, filename, result)
	case "xlsx":
		path, err = reportWriteExcel(dir, filename, result)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Could not render report: %v", err)})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
