package review

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
)

type CreateReviewDTO struct {
	Destination string `json:"destination" binding:"required"`
	Rating      int    `json:"rating"      binding:"required,min=1,max=5"`
	ReviewText  string `json:"reviewText"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Create(ctx context.Context, userID string, dto *CreateReviewDTO) (*models.ReviewModel, error) {
	r := models.ReviewModel{
		UserID:      userID,
		Destination: dto.Destination,
		Rating:      dto.Rating,
		ReviewText:  dto.ReviewText,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, r.ID)
}

func (s *Service) List(ctx context.Context, q pagination.Query, search, destination string) ([]models.ReviewModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.ReviewModel{}).Order("created_at DESC")
	if destination != "" {
		tx = tx.Where("destination = ?", destination)
	}
	if search != "" {
		tx = tx.Where("review_text LIKE ?", "%"+strings.TrimSpace(search)+"%")
	}
	tx = tx.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "profile_image")
	})

	var items []models.ReviewModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.ReviewModel, error) {
	var r models.ReviewModel
	err := s.db.WithContext(ctx).Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "profile_image")
	}).First(&r, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id).Error
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reviews", authMW)
	g.POST("", h.create)
	g.GET("", h.list)
	g.DELETE("/:id", middleware.RequireAdmin(), h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Destination and a rating between 1 and 5 are required")
		return
	}

	r, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.log.Error("create review failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Review created successfully", "review": r})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, c.Query("search"), c.Query("destination"))
	if err != nil {
		h.log.Error("list reviews failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("delete review failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Message(c, "Review deleted successfully")
}
