// Package server exposes the report pipeline over HTTP: upload an audio file
// with report metadata, download the generated document, clear the session.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/consultpro/interviewdoc/internal/pipeline"
	"github.com/consultpro/interviewdoc/internal/session"
)

// Server wires the pipeline and the session store behind a gin router.
type Server struct {
	proc     *pipeline.Processor
	sessions *session.Store
	logger   *slog.Logger
	maxBytes int64
}

func New(proc *pipeline.Processor, sessions *session.Store, logger *slog.Logger, maxUploadMB int64) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 200
	}
	return &Server{
		proc:     proc,
		sessions: sessions,
		logger:   logger,
		maxBytes: maxUploadMB << 20,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = s.maxBytes

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/reports", s.createReport)
	api.GET("/reports/last", s.lastReport)
	api.GET("/reports/last/download", s.downloadReport)
	api.DELETE("/reports/last", s.clearReport)
	return r
}
