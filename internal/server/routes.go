package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/transmission"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type decodeRequest struct {
	Hex  string `json:"hex" binding:"required"`
	Mode string `json:"mode"`
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/decode", append(s.gate, s.handleDecode)...)
}

func (s *Server) handleDecode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
		return
	}

	mode := transmission.ModeJSON
	if req.Mode != "" {
		m, err := transmission.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "bad_request"})
			return
		}
		mode = m
	}

	report, err := s.decoder.Decode(c.Request.Context(), "http", req.Hex)
	if err != nil {
		abortDecode(c, err)
		return
	}

	if mode == transmission.ModeJSON {
		doc, err := report.Document()
		if err != nil {
			abortDecode(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
		return
	}
	out, err := report.Render(mode)
	if err != nil {
		abortDecode(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": report.ID, "mode": mode, "result": out})
}

func abortDecode(c *gin.Context, err error) {
	c.JSON(decodeStatus(err), gin.H{
		"error":      err.Error(),
		"kind":       transmission.ErrorKind(err),
		"request_id": observability.RequestIDFrom(c),
	})
}

func decodeStatus(err error) int {
	switch {
	case errors.Is(err, transmission.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case transmission.ErrorKind(err) == "internal":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
