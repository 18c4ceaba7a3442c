package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/dto"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucappointment "github.com/campus-wellbeing/counsel-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book   *ucappointment.BookAppointment
	cancel *ucappointment.CancelAppointment
	list   *ucappointment.ListMyAppointments
	log    *zap.Logger
}

func NewAppointmentHandler(
	book *ucappointment.BookAppointment,
	cancel *ucappointment.CancelAppointment,
	list *ucappointment.ListMyAppointments,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:   book,
		cancel: cancel,
		list:   list,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	CounsellorID    uuid.UUID `json:"counsellorId" binding:"required"`
	TimeSlotID      uuid.UUID `json:"timeSlotId" binding:"required"`
	AppointmentDate string    `json:"appointmentDate" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	ap, err := h.book.Execute(c.Request.Context(), ucappointment.BookAppointmentInput{
		StudentID:    actor.ID,
		CounsellorID: req.CounsellorID,
		TimeSlotID:   req.TimeSlotID,
		Date:         req.AppointmentDate,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentView(ap))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentView(ap))
}

// ======================================================
// LIST (own / assigned / all)
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	apps, err := h.list.Execute(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentViews(apps))
}
