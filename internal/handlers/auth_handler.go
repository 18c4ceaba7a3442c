package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/dto"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	ucidentity "github.com/campus-wellbeing/counsel-api/internal/usecase/identity"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	register *ucidentity.Register
	login    *ucidentity.Login
	onboard  *ucidentity.CompleteOnboarding
	profile  *ucidentity.Profile
	log      *zap.Logger
}

func NewAuthHandler(
	register *ucidentity.Register,
	login *ucidentity.Login,
	onboard *ucidentity.CompleteOnboarding,
	profile *ucidentity.Profile,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		onboard:  onboard,
		profile:  profile,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role" binding:"required"`
	Specialization string `json:"specialization"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OnboardingRequest struct {
	Year       string `json:"year" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  dto.UserView `json:"user"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.register.Execute(c.Request.Context(), ucidentity.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Role:           req.Role,
		Specialization: req.Specialization,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, authResponse{Token: res.Token, User: dto.NewUserView(res.User)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password.")
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, authResponse{Token: res.Token, User: dto.NewUserView(res.User)})
}

// ======================================================
// AUTHENTICATED
// ======================================================

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.profile.Execute(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewUserView(u))
}

func (h *AuthHandler) Onboarding(c *gin.Context) {
	var req OnboardingRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.onboard.Execute(c.Request.Context(), ucidentity.OnboardingInput{
		StudentID:  middleware.Actor(c).ID,
		Year:       req.Year,
		Department: req.Department,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewUserView(u))
}

func (h *AuthHandler) QRCode(c *gin.Context) {
	u, err := h.profile.Execute(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if !u.IsOnboarded || u.AnonymousUsername == nil {
		httperr.BadRequest(c, "not_onboarded", "Complete onboarding first.")
		return
	}

	httpresp.OK(c, dto.QRPayload{
		StudentID: u.ID,
		Username:  *u.AnonymousUsername,
		Secret:    u.QRSecret,
	})
}
