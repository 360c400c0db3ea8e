package enquiry

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

// Enquiries flip freely between pending and closed.
var statusPolicy = moderation.NewToggle("Enquiry", models.StatusPending, models.StatusClosed)

type CreateEnquiryDTO struct {
	Name               string `json:"name"               binding:"required"`
	Email              string `json:"email"              binding:"required,email"`
	Phone              string `json:"phone"              binding:"required"`
	TravelDates        string `json:"travelDates"        binding:"required"`
	NumberOfTravellers int    `json:"numberOfTravellers" binding:"required,min=1"`
	SpecialRequests    string `json:"specialRequests"`
}

// StatusDTO is optional on the transition endpoint: an empty body flips to
// the other state.
type StatusDTO struct {
	Status models.Status `json:"status"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Create(ctx context.Context, dto *CreateEnquiryDTO) (*models.EnquiryModel, error) {
	e := models.EnquiryModel{
		Name:               dto.Name,
		Email:              dto.Email,
		Phone:              dto.Phone,
		TravelDates:        dto.TravelDates,
		NumberOfTravellers: dto.NumberOfTravellers,
		SpecialRequests:    dto.SpecialRequests,
		Status:             models.StatusPending,
	}
	return &e, s.db.WithContext(ctx).Create(&e).Error
}

func (s *Service) List(ctx context.Context, q pagination.Query, status models.Status) ([]models.EnquiryModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.EnquiryModel{}).Order("created_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var items []models.EnquiryModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.EnquiryModel, error) {
	var e models.EnquiryModel
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SetStatus applies the transition. Zero next means "flip to the other
// state", preserving the original toggle endpoint's behavior.
func (s *Service) SetStatus(ctx context.Context, id string, next models.Status) (*models.EnquiryModel, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil || e == nil {
		return e, err
	}

	if next == "" {
		if e.Status == models.StatusPending {
			next = models.StatusClosed
		} else {
			next = models.StatusPending
		}
	}
	if err := statusPolicy.Check(e.Status, next); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(e).Update("status", next).Error; err != nil {
		return nil, err
	}
	e.Status = next
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if e == nil {
		return false, nil
	}
	return true, s.db.WithContext(ctx).Delete(&models.EnquiryModel{}, "id = ?", id).Error
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/enquiries")

	g.POST("", h.create)

	a := g.Group("", authMW, middleware.RequireAdmin())
	a.GET("", h.list)
	a.PATCH("/:id/status", h.setStatus)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateEnquiryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Required fields missing")
		return
	}

	e, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		h.log.Error("create enquiry failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Enquiry submitted successfully", "data": e})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, models.Status(c.Query("status")))
	if err != nil {
		h.log.Error("list enquiries failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) setStatus(c *gin.Context) {
	var dto StatusDTO
	// Body is optional; a bare PATCH flips the state.
	_ = c.ShouldBindJSON(&dto)

	e, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		if moderation.IsPolicyError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		h.log.Error("update enquiry status failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if e == nil {
		response.NotFound(c, "Enquiry not found")
		return
	}
	response.OK(c, gin.H{"message": "Enquiry status changed to " + string(e.Status), "data": e})
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete enquiry failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Enquiry not found")
		return
	}
	response.Message(c, "Enquiry deleted successfully")
}
