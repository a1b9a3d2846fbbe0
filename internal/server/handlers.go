package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hhResponder/internal/responder"
	"hhResponder/internal/templates"
)

type resultResponse struct {
	RunID      string     `json:"run_id"`
	StartURL   string     `json:"start_url"`
	StartState string     `json:"start_state"`
	Processed  int        `json:"processed"`
	Submitted  int        `json:"submitted"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
	Pages      int        `json:"pages"`
	StopReason string     `json:"stop_reason,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type vacancyResponse struct {
	Title     string `json:"title"`
	ID        string `json:"id"`
	URL       string `json:"url"`
	SearchURL string `json:"search_url"`
}

type statusResponse struct {
	Running bool            `json:"running"`
	Vacancy vacancyResponse `json:"vacancy"`
	Current *resultResponse `json:"current,omitempty"`
	Last    *resultResponse `json:"last,omitempty"`
}

type applicationResponse struct {
	RunID        string    `json:"run_id"`
	VacancyID    string    `json:"vacancy_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Template     string    `json:"template"`
	Variant      string    `json:"variant"`
	Questions    int       `json:"questions"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	Technologies []string  `json:"technologies,omitempty"`
	Level        string    `json:"level,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type updateTemplateRequest struct {
	Text string `json:"text" binding:"required"`
}

type applicationsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

func toResult(r *responder.Result) *resultResponse {
	if r == nil {
		return nil
	}
	out := &resultResponse{
		RunID:      r.RunID,
		StartURL:   r.StartURL,
		StartState: r.StartState.String(),
		Processed:  r.Processed,
		Submitted:  r.Submitted,
		Failed:     r.Failed,
		Skipped:    r.Skipped,
		Pages:      r.Pages,
		StopReason: r.StopReason,
		StartedAt:  r.StartedAt,
	}
	if !r.FinishedAt.IsZero() {
		t := r.FinishedAt
		out.FinishedAt = &t
	}
	return out
}

func (s *Server) status(c *gin.Context) {
	st := s.ctrl.Status()
	c.JSON(http.StatusOK, statusResponse{
		Running: st.Running,
		Vacancy: vacancyResponse(st.Vacancy),
		Current: toResult(st.Current),
		Last:    toResult(st.Last),
	})
}

func (s *Server) toggle(c *gin.Context) {
	running, err := s.ctrl.Toggle(s.base)
	if err != nil {
		s.runError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": running})
}

func (s *Server) start(c *gin.Context) {
	if err := s.ctrl.Start(s.base); err != nil {
		s.runError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": true})
}

func (s *Server) stop(c *gin.Context) {
	if err := s.ctrl.Stop(); err != nil {
		s.runError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": false})
}

func (s *Server) runError(c *gin.Context, err error) {
	if errors.Is(err, responder.ErrAlreadyRunning) || errors.Is(err, responder.ErrNotRunning) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	s.log.Error("Ошибка управления циклом", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"selected":  s.templates.Selected(),
		"names":     s.templates.Names(),
		"templates": s.templates.All(),
	})
}

func (s *Server) updateTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := templates.Resolve(c.Param("name"))
	if err := s.templates.Update(c.Request.Context(), name, req.Text); err != nil {
		s.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

func (s *Server) selectTemplate(c *gin.Context) {
	name := templates.Resolve(c.Param("name"))
	if err := s.templates.Select(c.Request.Context(), name); err != nil {
		s.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": name})
}

func (s *Server) previewTemplate(c *gin.Context) {
	name := templates.Resolve(c.Param("name"))
	text, err := s.templates.Preview(name)
	if err != nil {
		s.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "preview": text})
}

func (s *Server) templateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, templates.ErrUnknownTemplate):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, templates.ErrEmptyTemplate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("Ошибка сохранения шаблона", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка сохранения настроек"})
	}
}

func (s *Server) applications(c *gin.Context) {
	var q applicationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	apps, err := s.ctrl.Journal().Applications(c.Request.Context(), q.Limit)
	if err != nil {
		s.log.Error("Ошибка чтения журнала", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, applicationResponse{
			RunID:        a.RunID,
			VacancyID:    a.VacancyID,
			Title:        a.Title,
			URL:          a.URL,
			Template:     a.Template,
			Variant:      a.Variant,
			Questions:    a.Questions,
			Status:       a.Status,
			Error:        a.Error,
			Technologies: a.Technologies,
			Level:        a.Level,
			CreatedAt:    a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.ctrl.Journal().Stats(c.Request.Context())
	if err != nil {
		s.log.Error("Ошибка чтения журнала", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
