package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/movelab/physiorag/internal/config"
	"github.com/movelab/physiorag/internal/core"
	"github.com/movelab/physiorag/internal/core/model"
	"github.com/movelab/physiorag/internal/driver"
	"github.com/movelab/physiorag/internal/llm"
	"github.com/movelab/physiorag/internal/logger"
)

type Server struct {
	Pipeline *core.Pipeline
	Log      *logger.Logger

	graph driver.GraphDriver
}

// NewServer connects the process-wide handles (store driver, model
// clients) and wires the pipeline. Connection or credential problems here
// are startup failures, not per-query ones.
func NewServer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	d, err := driver.NewNeo4jDriver(cfg.Neo4j, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	llmClient, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}
	if embedder == nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("llm provider '%s' has no embedding support; vector retrieval requires one", cfg.LLM.Provider)
	}

	if err := d.VerifyIndexes(ctx, cfg.Retrieval.VectorIndex, cfg.Retrieval.FulltextIndex); err != nil {
		log.Warn("could not verify search indexes", "error", err)
	}

	return &Server{
		Pipeline: core.NewPipeline(d, llmClient, embedder, cfg, log),
		Log:      log,
		graph:    d,
	}, nil
}

func (s *Server) Close(ctx context.Context) error {
	if s.graph == nil {
		return nil
	}
	return s.graph.Close(ctx)
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(s.Log), cors.Default())

	r.GET("/health", s.Health)
	r.POST("/query", s.Query)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type QueryRequest struct {
	Query string `json:"query" binding:"required"`
	Mode  string `json:"mode"`
}

func (s *Server) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := s.Pipeline.AnswerQuery(c.Request.Context(), req.Query, model.ParseMode(req.Mode))
	if err != nil {
		s.Log.Error("query failed", "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer query"})
		return
	}

	c.JSON(http.StatusOK, result)
}
