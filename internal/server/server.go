// Package server exposes the binding surface over HTTP.
//
// Request bodies carry host values as JSON, so the same argument checks a
// native host would get apply here: a non-string "text" is a TypeError.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/shapestone/fastcsv/pkg/binding"
	"github.com/shapestone/fastcsv/pkg/csv"
)

// RequestIDHeader is set on every response.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 5 * time.Second

// ParseRequest is the body of every parse endpoint.
// Text and Options stay untyped so the binding layer can check them.
type ParseRequest struct {
	Text    any `json:"text"`
	Options any `json:"options"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// Server routes HTTP requests to the binding layer.
type Server struct {
	engine *gin.Engine
	log    commonlog.Logger
}

// New creates a Server with its routes registered.
func New(log commonlog.Logger) *Server {
	s := &Server{
		engine: gin.New(),
		log:    log,
	}
	s.engine.Use(s.requestID(), gin.Recovery())

	s.engine.GET("/healthz", s.health)
	v1 := s.engine.Group("/v1")
	v1.POST("/parse", s.parse)
	v1.POST("/parse/objects", s.parseObjects)
	v1.POST("/headers", s.headers)

	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Noticef("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Notice("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID tags each request with a uuid and logs its outcome.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		s.log.Infof("%s %s %d %s request_id=%s",
			c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start), id)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) parse(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	rows, err := binding.ParseCSV(req.Text, req.Options)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) parseObjects(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	records, err := binding.ParseToObjects(req.Text, req.Options)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) headers(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	h, err := binding.MakeParser(req.Options)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := h.Parse(req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"headers": h.GetHeaders(),
		"rows":    len(rows.([]any)),
	})
}

func (s *Server) bind(c *gin.Context) (ParseRequest, bool) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid JSON body: " + err.Error(),
			Type:  "BadRequest",
		})
		return req, false
	}
	return req, true
}

// fail maps binding errors onto HTTP status codes.
func (s *Server) fail(c *gin.Context, err error) {
	var typeErr *binding.TypeError
	var hostErr *binding.HostError

	switch {
	case errors.As(err, &typeErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: typeErr.Message, Type: "TypeError"})
	case errors.As(err, &hostErr):
		status := http.StatusInternalServerError
		if errors.Is(hostErr, csv.ErrInvalidDelimiter) {
			status = http.StatusBadRequest
		} else {
			s.log.Errorf("host error: %s", hostErr.Message)
		}
		c.AbortWithStatusJSON(status, ErrorResponse{Error: hostErr.Message, Type: "Error"})
	default:
		s.log.Errorf("unexpected error: %s", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Type: "Error"})
	}
}
