package contact

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/moderation"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
)

// Contact forms are gated strictly: close only from pending, reopen only
// from closed.
var statusPolicy = moderation.NewDirectional("Contact form", models.StatusPending, models.StatusClosed)

type CreateContactDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type StatusDTO struct {
	Status models.Status `json:"status" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Create(ctx context.Context, dto *CreateContactDTO) (*models.ContactModel, error) {
	m := models.ContactModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Subject: dto.Subject,
		Message: dto.Message,
		Status:  models.StatusPending,
	}
	return &m, s.db.WithContext(ctx).Create(&m).Error
}

func (s *Service) List(ctx context.Context, q pagination.Query, status models.Status) ([]models.ContactModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.ContactModel{}).Order("created_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var items []models.ContactModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.ContactModel, error) {
	var m models.ContactModel
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, next models.Status) (*models.ContactModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	if err := statusPolicy.Check(m.Status, next); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(m).Update("status", next).Error; err != nil {
		return nil, err
	}
	m.Status = next
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	return true, s.db.WithContext(ctx).Delete(&models.ContactModel{}, "id = ?", id).Error
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/contactUs", authMW)

	g.POST("/post", middleware.RequireRoles(models.RoleCustomer), h.create)

	a := g.Group("", middleware.RequireAdmin())
	a.GET("", h.list)
	a.GET("/:id", h.getByID)
	a.PATCH("/:id", h.setStatus)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Name, email, subject, and message are required.")
		return
	}

	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		h.log.Error("create contact form failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Contact Form submitted successfully.", "data": m})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, models.Status(c.Query("status")))
	if err != nil {
		h.log.Error("list contact forms failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) getByID(c *gin.Context) {
	m, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get contact form failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if m == nil {
		response.NotFound(c, "Contact form not found")
		return
	}
	response.OK(c, gin.H{"data": m})
}

func (h *Handler) setStatus(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}

	m, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		if moderation.IsPolicyError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		h.log.Error("update contact form status failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if m == nil {
		response.NotFound(c, "Contact form not found")
		return
	}
	response.OK(c, gin.H{"message": "Contact form status updated to " + string(m.Status), "data": m})
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete contact form failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Contact form not found")
		return
	}
	response.Message(c, "Contact form deleted successfully")
}
