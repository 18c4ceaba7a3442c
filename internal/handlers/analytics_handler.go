package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/analytics"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucanalytics "github.com/campus-wellbeing/counsel-api/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	svc    *ucanalytics.Service
	export *ucanalytics.ExportOverview
	log    *zap.Logger
}

func NewAnalyticsHandler(
	svc *ucanalytics.Service,
	export *ucanalytics.ExportOverview,
	log *zap.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc:    svc,
		export: export,
		log:    log,
	}
}

func (h *AnalyticsHandler) grouped(c *gin.Context, dim domain.Dimension) {
	out, err := h.svc.Grouped(c.Request.Context(), dim)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) Department(c *gin.Context) {
	h.grouped(c, domain.ByDepartment)
}

func (h *AnalyticsHandler) Year(c *gin.Context) {
	h.grouped(c, domain.ByYear)
}

func (h *AnalyticsHandler) Severity(c *gin.Context) {
	out, err := h.svc.BySeverity(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) Volume(c *gin.Context) {
	out, err := h.svc.Volume(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	out, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) ExportOverview(c *gin.Context) {
	key, err := h.export.Execute(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, gin.H{"key": key})
}
