package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/consultpro/interviewdoc/internal/common"
	"github.com/consultpro/interviewdoc/internal/report"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// createReport accepts a multipart form (audio file + metadata fields), runs
// the pipeline, and stores the result as the session's last report.
func (s *Server) createReport(c *gin.Context) {
	rid := uuid.New().String()
	start := time.Now()

	mode, err := report.ParseMode(c.PostForm("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode", "code": "UNKNOWN_MODE"})
		return
	}

	meta := report.Metadata{
		Mode:    mode,
		Company: strings.TrimSpace(c.PostForm("company")),
		Product: strings.TrimSpace(c.PostForm("product")),
		Topic:   strings.TrimSpace(c.PostForm("topic")),
		Date:    time.Now(),
	}
	if d := c.PostForm("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD", "code": "INVALID_INPUT"})
			return
		}
		meta.Date = parsed
	}
	if !mode.IsMeeting() && (meta.Company == "" || meta.Product == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company and product are required", "code": "INVALID_INPUT"})
		return
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required", "code": "INVALID_INPUT"})
		return
	}

	tmpPath, err := s.saveUploadTemp(fh)
	if err != nil {
		s.logger.Error("server.upload.save_failed", "req_id", rid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload", "code": "INTERNAL"})
		return
	}
	// Temp audio is scoped to this request; removal runs on failure paths too.
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.logger.Warn("server.upload.cleanup_failed", "req_id", rid, "path", tmpPath, "error", err)
		}
	}()

	s.logger.Info("server.report.start",
		"req_id", rid,
		"mode", string(mode),
		"audio", fh.Filename,
		"size", fh.Size,
	)

	res, err := s.proc.Generate(c.Request.Context(), tmpPath, meta)
	if err != nil {
		s.logger.Error("server.report.failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		status, code := classify(err)
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	s.sessions.Set(res)
	s.logger.Info("server.report.ok",
		"req_id", rid,
		"filename", res.Filename,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	c.JSON(http.StatusOK, gin.H{
		"filename": res.Filename,
		"language": string(res.Content.Lang()),
		"summary":  report.SanitizeText(res.Content.ExecutiveSummary),
	})
}

// lastReport returns a JSON preview of the stored session result.
func (s *Server) lastReport(c *gin.Context) {
	res := s.sessions.Last()
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report in session", "code": "NOT_FOUND"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": res.Filename,
		"language": string(res.Content.Lang()),
		"summary":  report.SanitizeText(res.Content.ExecutiveSummary),
		"content":  res.Content,
	})
}

// downloadReport streams the stored document as a docx attachment.
func (s *Server) downloadReport(c *gin.Context) {
	res := s.sessions.Last()
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report in session", "code": "NOT_FOUND"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	c.Data(http.StatusOK, docxMIME, res.Document)
}

// clearReport discards the session result so the operator can redo.
func (s *Server) clearReport(c *gin.Context) {
	s.sessions.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// saveUploadTemp copies an uploaded file into a temp file, preserving the
// extension so the MIME type can be derived later.
func (s *Server) saveUploadTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "interviewdoc-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// classify maps pipeline failures onto HTTP statuses, keeping the contract
// violations distinguishable from service problems.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrUnknownMode), errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, common.ErrMalformedContent):
		return http.StatusBadGateway, "MALFORMED_CONTENT"
	case errors.Is(err, common.ErrExtractionParse):
		return http.StatusBadGateway, "EXTRACTION_PARSE_ERROR"
	case errors.Is(err, common.ErrAdapterFailure):
		return http.StatusBadGateway, "ADAPTER_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
