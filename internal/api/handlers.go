package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"news_radar/internal/domain"
)

// Configurations created through the API are attached to this user until
// real authentication lands.
const (
	defaultUsername = "default_user"
	defaultEmail    = "default@example.com"
)

const defaultArticleLimit = 50

type Server struct {
	configs    ConfigStore
	articles   ArticleStore
	users      UserStore
	tx         TransactionManager
	dispatcher Dispatcher
	ingest     Ingestor
	logger     *slog.Logger
}

func NewServer(
	configs ConfigStore,
	articles ArticleStore,
	users UserStore,
	tx TransactionManager,
	dispatcher Dispatcher,
	ingest Ingestor,
	logger *slog.Logger,
) *Server {
	return &Server{
		configs:    configs,
		articles:   articles,
		users:      users,
		tx:         tx,
		dispatcher: dispatcher,
		ingest:     ingest,
		logger:     logger.With("component", "api"),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/configs", s.listConfigs)
		apiGroup.POST("/configs", s.createConfig)
		apiGroup.GET("/configs/:id", s.getConfig)
		apiGroup.PUT("/configs/:id", s.updateConfig)
		apiGroup.DELETE("/configs/:id", s.deleteConfig)
		apiGroup.PATCH("/configs/:id/last-executed", s.touchLastExecuted)
		apiGroup.POST("/configs/:id/run", s.runConfig)
		apiGroup.GET("/configs/:id/articles", s.listConfigArticles)

		apiGroup.GET("/articles", s.listArticles)
		apiGroup.POST("/articles", s.createArticle)
		apiGroup.POST("/articles/batch", s.createArticlesBatch)
	}

	return r
}

func (s *Server) listConfigs(c *gin.Context) {
	configs, err := s.configs.ListActive(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (s *Server) createConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	req.applyDefaults()
	if err := req.validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.GetOrCreate(c.Request.Context(), defaultUsername, defaultEmail)
	if err != nil {
		s.fail(c, err)
		return
	}

	cfg := &domain.SearchConfig{UserID: user.ID}
	req.apply(cfg)

	if err := s.configs.Create(c.Request.Context(), cfg); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cfg)
}

func (s *Server) getConfig(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	cfg, err := s.configs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) updateConfig(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	req.applyDefaults()
	if err := req.validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	cfg, err := s.configs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	req.apply(cfg)
	if err := s.configs.Update(c.Request.Context(), cfg); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) deleteConfig(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	// Articles and config go in one transaction so the cascade is atomic.
	err := s.tx.WithTransaction(c.Request.Context(), func(txCtx context.Context) error {
		return s.configs.Delete(txCtx, id)
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) touchLastExecuted(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	if err := s.configs.TouchLastExecuted(c.Request.Context(), id, time.Now().UTC()); err != nil {
		s.fail(c, err)
		return
	}

	cfg, err := s.configs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) runConfig(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	cfg, err := s.configs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	jobID, err := s.dispatcher.Submit(
		"manual-ingest-"+strconv.FormatInt(id, 10),
		func(jobCtx context.Context) {
			if _, err := s.ingest.Run(jobCtx, id, ""); err != nil {
				s.logger.Error("manual ingestion failed", "config_id", id, "error", err)
			}
		},
	)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, domain.ScheduledJob{
		ConfigID:   cfg.ID,
		ConfigName: cfg.Name,
		JobID:      jobID,
	})
}

func (s *Server) listConfigArticles(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	if _, err := s.configs.GetByID(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}

	articles, err := s.articles.ListByConfig(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) listArticles(c *gin.Context) {
	limit := defaultArticleLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	articles, err := s.articles.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// createArticle is idempotent on URL: posting an already-stored URL
// returns the existing row without touching it.
func (s *Server) createArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	article, err := req.toArticle()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.configs.GetByID(c.Request.Context(), req.SearchConfigID); err != nil {
		s.fail(c, err)
		return
	}

	stored, outcome, err := s.articles.CreateOrGet(c.Request.Context(), article)
	if err != nil {
		s.fail(c, err)
		return
	}

	status := http.StatusCreated
	if outcome == domain.OutcomeDuplicate {
		status = http.StatusOK
	}
	c.JSON(status, stored)
}

// createArticlesBatch stores provider-shaped records under one config,
// applying the pipeline's normalization and dedup rules.
func (s *Server) createArticlesBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.configs.GetByID(c.Request.Context(), req.SearchConfigID); err != nil {
		s.fail(c, err)
		return
	}

	stored := make([]domain.Article, 0, len(req.Records))
	for _, record := range req.Records {
		article, err := record.ToArticle(req.SearchConfigID)
		if err != nil {
			s.logger.Warn("skipping malformed record", "url", record.URL, "error", err)
			continue
		}

		saved, _, err := s.articles.CreateOrGet(c.Request.Context(), article)
		if err != nil {
			s.logger.Warn("skipping record on store failure", "url", article.URL, "error", err)
			continue
		}
		stored = append(stored, *saved)
	}

	c.JSON(http.StatusOK, stored)
}

func (s *Server) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
