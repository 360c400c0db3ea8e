package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

// Login cookie lifetime, matching the original deployment's 3 days.
const cookieMaxAge = 3 * 24 * 60 * 60

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/signup", h.signup)
	rg.POST("/verifyOtp", h.verifyOTP)
	rg.POST("/login", h.login)

	a := rg.Group("", authMW, middleware.RequireRoles(models.RoleSuperAdmin))
	a.POST("/createAdmin", h.createAdmin)
	a.GET("/users", h.listUsers)
	a.DELETE("/user/delete/:id", h.deleteUser)
}

func clientError(c *gin.Context, err error) bool {
	var ve *ErrValidation
	if errors.As(err, &ve) {
		response.BadRequest(c, ve.Msg)
		return true
	}
	var ue *uploads.UnsupportedTypeError
	if errors.As(err, &ue) {
		response.BadRequest(c, "File format not supported")
		return true
	}
	switch {
	case errors.Is(err, ErrEmailTaken):
		response.BadRequest(c, "User already exists")
		return true
	case errors.Is(err, ErrAlreadyVerified):
		response.BadRequest(c, "User is already verified")
		return true
	case errors.Is(err, ErrOTPExpired):
		response.BadRequest(c, "OTP has expired")
		return true
	case errors.Is(err, ErrOTPInvalid):
		response.BadRequest(c, "Invalid OTP")
		return true
	}
	return false
}

func (h *Handler) signup(c *gin.Context) {
	if err := h.svc.Signup(c.Request.Context(), parseSignupDTO(c)); err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("signup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Message(c, "User created Successfully")
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var dto VerifyOTPDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide both email and OTP")
		return
	}

	if err := h.svc.VerifyOTP(c.Request.Context(), dto.Email, dto.OTP); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		if clientError(c, err) {
			return
		}
		h.log.Error("otp verification failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Message(c, "User verified successfully")
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please fill all the fields.")
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotRegistered):
			response.BadRequest(c, "Please register first")
		case errors.Is(err, ErrNotVerified):
			response.Unauthorized(c, "Please verify your email before logging in.")
		case errors.Is(err, ErrBadPassword):
			response.Forbidden(c, "Incorrect Password")
		default:
			h.log.Error("login failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.SetCookie(middleware.TokenCookie, token, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged in successfully",
		"user":    u,
		"token":   token,
	})
}

func (h *Handler) createAdmin(c *gin.Context) {
	if err := h.svc.CreateAdmin(c.Request.Context(), parseSignupDTO(c)); err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("create admin failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Message(c, "Admin created successfully. OTP sent to email.")
}

func (h *Handler) listUsers(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, middleware.CurrentUserID(c))
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) deleteUser(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "User not found")
		return
	}
	response.Message(c, "User deleted successfully")
}
