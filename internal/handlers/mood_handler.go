package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/dto"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucWellbeing "github.com/campus-wellbeing/counsel-api/internal/usecase/wellbeing"
)

type MoodHandler struct {
	moods *ucWellbeing.Moods
	log   *zap.Logger
}

func NewMoodHandler(moods *ucWellbeing.Moods, log *zap.Logger) *MoodHandler {
	return &MoodHandler{moods: moods, log: log}
}

type MoodRequest struct {
	Date      string `json:"date"`
	MoodLevel int    `json:"moodLevel" binding:"required"`
	MoodEmoji string `json:"moodEmoji"`
	Note      string `json:"note"`
}

// Upsert records the student's mood for a day: 201 on first entry, 200
// when the day's entry is replaced.
func (h *MoodHandler) Upsert(c *gin.Context) {
	var req MoodRequest
	if !bindJSON(c, &req) {
		return
	}

	mood, created, err := h.moods.Record(c.Request.Context(), middleware.Actor(c).ID, ucWellbeing.MoodInput{
		Date:      req.Date,
		MoodLevel: req.MoodLevel,
		MoodEmoji: req.MoodEmoji,
		Note:      req.Note,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if created {
		httpresp.Created(c, dto.NewMoodView(mood))
		return
	}
	httpresp.OK(c, dto.NewMoodView(mood))
}

func (h *MoodHandler) List(c *gin.Context) {
	moods, err := h.moods.History(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewMoodViews(moods))
}

func (h *MoodHandler) Month(c *gin.Context) {
	moods, err := h.moods.Month(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewMoodViews(moods))
}

func (h *MoodHandler) Today(c *gin.Context) {
	mood, err := h.moods.Today(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if mood == nil {
		httpresp.Nullable(c, nil)
		return
	}
	httpresp.OK(c, dto.NewMoodView(mood))
}
