package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/availability"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucavailability "github.com/campus-wellbeing/counsel-api/internal/usecase/availability"
)

type SlotHandler struct {
	create *ucavailability.CreateSlot
	list   *ucavailability.ListSlots
	remove *ucavailability.DeleteSlot
	log    *zap.Logger
}

func NewSlotHandler(
	create *ucavailability.CreateSlot,
	list *ucavailability.ListSlots,
	remove *ucavailability.DeleteSlot,
	log *zap.Logger,
) *SlotHandler {
	return &SlotHandler{
		create: create,
		list:   list,
		remove: remove,
		log:    log,
	}
}

type CreateSlotRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

func (h *SlotHandler) Create(c *gin.Context) {
	var req CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	slot, err := h.create.Execute(c.Request.Context(), domain.SlotInput{
		CounsellorID: actor.ID,
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, slot)
}

func (h *SlotHandler) List(c *gin.Context) {
	counsellorID, ok := pathID(c, "counsellorId")
	if !ok {
		return
	}

	slots, err := h.list.Execute(c.Request.Context(), counsellorID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *SlotHandler) Delete(c *gin.Context) {
	slotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	actor := middleware.Actor(c)
	if err := h.remove.Execute(c.Request.Context(), actor.ID, slotID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Message(c, "Time slot deleted")
}
