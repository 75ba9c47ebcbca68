// Package server exposes the decision workflow over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Armankhatri7/RAGAgent/internal/domain"
)

// WorkflowRunner is the server-facing subset of the workflow agent.
type WorkflowRunner interface {
	Run(ctx context.Context, query string) (domain.State, error)
}

// Server holds the HTTP handlers around one shared workflow agent.
type Server struct {
	agent WorkflowRunner
	log   *zap.Logger
}

func New(agent WorkflowRunner, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{agent: agent, log: log}
}

// Routes builds the gin engine with all endpoints registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())
	r.POST("/api/chat", s.handleChat)
	r.POST("/api/workflow", s.handleWorkflow)
	r.GET("/api/health", s.handleHealth)
	return r
}

type chatRequest struct {
	Query string `json:"query"`
}

// handleChat validates the query, runs the workflow synchronously and
// returns only the answer and source fields.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}
	state, err := s.agent.Run(c.Request.Context(), req.Query)
	if err != nil {
		s.log.Error("workflow failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"answer": state.Answer,
		"source": state.Source,
	})
}

// handleWorkflow is the raw facade variant: it returns the terminal
// workflow state verbatim.
func (s *Server) handleWorkflow(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}
	state, err := s.agent.Run(c.Request.Context(), req.Query)
	if err != nil {
		s.log.Error("workflow failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
