package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucWellbeing "github.com/campus-wellbeing/counsel-api/internal/usecase/wellbeing"
)

type JournalHandler struct {
	journals *ucWellbeing.Journals
	log      *zap.Logger
}

func NewJournalHandler(journals *ucWellbeing.Journals, log *zap.Logger) *JournalHandler {
	return &JournalHandler{journals: journals, log: log}
}

type JournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood"`
}

func (r JournalRequest) input() ucWellbeing.JournalInput {
	return ucWellbeing.JournalInput{Title: r.Title, Content: r.Content, Mood: r.Mood}
}

func (h *JournalHandler) List(c *gin.Context) {
	journals, err := h.journals.List(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, journals)
}

func (h *JournalHandler) Create(c *gin.Context) {
	var req JournalRequest
	if !bindJSON(c, &req) {
		return
	}

	j, err := h.journals.Create(c.Request.Context(), middleware.Actor(c).ID, req.input())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, j)
}

func (h *JournalHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req JournalRequest
	if !bindJSON(c, &req) {
		return
	}

	j, err := h.journals.Update(c.Request.Context(), middleware.Actor(c).ID, id, req.input())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, j)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.journals.Delete(c.Request.Context(), middleware.Actor(c).ID, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Message(c, "Journal deleted")
}
