package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/dto"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucsession "github.com/campus-wellbeing/counsel-api/internal/usecase/session"
)

type SessionHandler struct {
	start *ucsession.StartSession
	end   *ucsession.EndSession
	get   *ucsession.GetSession
	list  *ucsession.ListSessions
	log   *zap.Logger
}

func NewSessionHandler(
	start *ucsession.StartSession,
	end *ucsession.EndSession,
	get *ucsession.GetSession,
	list *ucsession.ListSessions,
	log *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		start: start,
		end:   end,
		get:   get,
		list:  list,
		log:   log,
	}
}

type StartSessionRequest struct {
	StudentID     uuid.UUID  `json:"studentId" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointmentId"`
}

type EndSessionRequest struct {
	Notes    string `json:"notes"`
	Severity string `json:"severity"`
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	s, err := h.start.Execute(c.Request.Context(), ucsession.StartSessionInput{
		CounsellorID:  actor.ID,
		StudentID:     req.StudentID,
		AppointmentID: req.AppointmentID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.NewSessionView(s))
}

func (h *SessionHandler) End(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req EndSessionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	s, err := h.end.Execute(c.Request.Context(), ucsession.EndSessionInput{
		CounsellorID: actor.ID,
		SessionID:    id,
		Notes:        req.Notes,
		Severity:     req.Severity,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewSessionView(s))
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewSessionView(s))
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.list.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.NewSessionViews(sessions))
}
