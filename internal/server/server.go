// Package server - локальный HTTP API для управления циклом откликов и шаблонами писем.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hhResponder/internal/config"
	"hhResponder/internal/logger"
	"hhResponder/internal/responder"
)

// Controller - то, чем управляет кнопка старт/стоп.
type Controller interface {
	Toggle(ctx context.Context) (bool, error)
	Start(ctx context.Context) error
	Stop() error
	Status() responder.Status
	Journal() responder.Journal
}

// Templates - набор шаблонов сопроводительных писем.
type Templates interface {
	Names() []string
	All() map[string]string
	Selected() string
	Select(ctx context.Context, name string) error
	Update(ctx context.Context, name, text string) error
	Preview(name string) (string, error)
}

type Server struct {
	cfg       *config.Cfg
	log       *logger.Zap
	ctrl      Controller
	templates Templates
	router    *gin.Engine

	// base - контекст процесса; фоновый цикл не должен зависеть от контекста запроса.
	base context.Context
}

func New(cfg *config.Cfg, log *logger.Zap, ctrl Controller, tpl Templates) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log,
		ctrl:      ctrl,
		templates: tpl,
		base:      context.Background(),
	}
	s.router = s.routes()
	return s
}

// Handler отдает gin-роутер, в том числе для httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Простейший лог-мидлвар
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/status", s.status)

	run := api.Group("/run")
	run.POST("/toggle", s.toggle)
	run.POST("/start", s.start)
	run.POST("/stop", s.stop)

	tpl := api.Group("/templates")
	tpl.GET("", s.listTemplates)
	tpl.PUT("/:name", s.updateTemplate)
	tpl.POST("/:name/select", s.selectTemplate)
	tpl.GET("/:name/preview", s.previewTemplate)

	api.GET("/applications", s.applications)
	api.GET("/stats", s.stats)

	return r
}

// Run слушает App.Host:App.Port до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	s.base = ctx
	addr := fmt.Sprintf("%s:%s", s.cfg.App.Host, s.cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Сервер запущен", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ошибка HTTP сервера: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки HTTP сервера: %w", err)
	}
	s.log.Info("Сервер остановлен")
	return nil
}
