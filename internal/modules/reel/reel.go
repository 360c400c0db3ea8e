package reel

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/config"
	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/cache"
	"github.com/triponation/core/internal/pkg/moderation"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

const uploadFolder = "ReelUploads"

var statusPolicy = moderation.NewToggle("Reel", models.StatusPending, models.StatusApproved)

type StatusDTO struct {
	Status models.Status `json:"status"`
}

type Service struct {
	db      *gorm.DB
	cache   *cache.Client
	uploads *uploads.Manager
	ttl     config.CacheConfig
	log     *zap.Logger
}

func NewService(db *gorm.DB, cc *cache.Client, um *uploads.Manager, ttl config.CacheConfig, log *zap.Logger) *Service {
	return &Service{db: db, cache: cc, uploads: um, ttl: ttl, log: log}
}

func (s *Service) withCreator(tx *gorm.DB) *gorm.DB {
	return tx.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "profile_image")
	})
}

func (s *Service) Create(ctx context.Context, userID, caption string, video *multipart.FileHeader) (*models.ReelModel, error) {
	att, err := s.uploads.CollectVideo(ctx, video, uploads.Options{
		Folder:       uploadFolder,
		UploadedByID: userID,
	})
	if err != nil {
		return nil, err
	}

	r := models.ReelModel{
		VideoURL:    att.URL,
		ExternalID:  att.ExternalID,
		Caption:     caption,
		Status:      models.StatusPending,
		CreatedByID: &userID,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		s.uploads.Remove(ctx, []models.Attachment{att})
		return nil, err
	}
	s.uploads.Claim(ctx, []models.Attachment{att}, "reel", r.ID)
	s.invalidate(ctx)

	return s.GetByID(ctx, r.ID)
}

func (s *Service) List(ctx context.Context, q pagination.Query, status models.Status) ([]models.ReelModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.ReelModel{}).Order("created_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var items []models.ReelModel
	pag, err := pagination.Paginate(s.withCreator(tx), q, &items)
	return items, pag, err
}

type approvedPage struct {
	Items  []models.ReelModel `json:"items"`
	Paging response.Paging    `json:"paging"`
}

func (s *Service) Approved(ctx context.Context, q pagination.Query) ([]models.ReelModel, response.Paging, bool, error) {
	key := cache.Key("approvedReels", strconv.Itoa(q.Page), strconv.Itoa(q.Limit))

	var page approvedPage
	if hit, err := s.cache.GetJSON(ctx, key, &page); err != nil {
		s.log.Warn("approved reels cache read failed", zap.Error(err))
	} else if hit {
		return page.Items, page.Paging, true, nil
	}

	tx := s.db.WithContext(ctx).Model(&models.ReelModel{}).
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC")

	var items []models.ReelModel
	pag, err := pagination.Paginate(s.withCreator(tx), q, &items)
	if err != nil {
		return nil, response.Paging{}, false, err
	}

	if err := s.cache.SetJSON(ctx, key, approvedPage{Items: items, Paging: pag}, s.ttl.ApprovedTTL()); err != nil {
		s.log.Warn("approved reels cache write failed", zap.Error(err))
	}
	return items, pag, false, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.ReelModel, error) {
	var r models.ReelModel
	err := s.withCreator(s.db.WithContext(ctx)).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update patches the caption and optionally swaps the stored video, freeing
// the replaced object.
func (s *Service) Update(ctx context.Context, id, caption string, video *multipart.FileHeader) (*models.ReelModel, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil || r == nil {
		return r, err
	}

	if video != nil {
		att, err := s.uploads.CollectVideo(ctx, video, uploads.Options{Folder: uploadFolder})
		if err != nil {
			return nil, err
		}
		s.uploads.Remove(ctx, []models.Attachment{r.Video()})
		s.uploads.Claim(ctx, []models.Attachment{att}, "reel", r.ID)
		r.VideoURL = att.URL
		r.ExternalID = att.ExternalID
	}
	if caption != "" {
		r.Caption = caption
	}

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, next models.Status) (*models.ReelModel, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil || r == nil {
		return r, err
	}
	if err := statusPolicy.Check(r.Status, next); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(r).Update("status", next).Error; err != nil {
		return nil, err
	}
	r.Status = next
	s.invalidate(ctx)
	return r, nil
}

func (s *Service) ToggleLike(ctx context.Context, id, userID string) (*models.ReelModel, bool, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil || r == nil {
		return r, false, err
	}

	var liked bool
	r.LikedBy, liked = r.LikedBy.Toggle(userID)

	if err := s.db.WithContext(ctx).Model(r).Update("liked_by", r.LikedBy).Error; err != nil {
		return nil, false, err
	}
	return r, liked, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if r == nil {
		return false, nil
	}

	s.uploads.Remove(ctx, []models.Attachment{r.Video()})
	if err := s.db.WithContext(ctx).Delete(&models.ReelModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return true, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DelPattern(ctx, cache.Key("approvedReels")+"*"); err != nil {
		s.log.Warn("approved reels cache invalidation failed", zap.Error(err))
	}
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reels")

	g.GET("/approvedReels", h.approved)
	g.GET("/:id", h.getByID)

	a := g.Group("", authMW)
	a.POST("/create", h.create)
	a.GET("/allReels", middleware.RequireAdmin(), h.list)
	a.PATCH("/status/:id", middleware.RequireAdmin(), h.setStatus)
	a.PATCH("/likeUnlike/:id", middleware.RequireRoles(models.RoleCustomer), h.toggleLike)
	a.PUT("/update/:id", middleware.RequireAdmin(), h.update)
	a.DELETE("/delete/:id", middleware.RequireAdmin(), h.delete)
}

func clientError(c *gin.Context, err error) bool {
	var ue *uploads.UnsupportedTypeError
	if errors.As(err, &ue) {
		response.BadRequest(c, ue.Error())
		return true
	}
	if moderation.IsPolicyError(err) {
		response.BadRequest(c, err.Error())
		return true
	}
	return false
}

func (h *Handler) create(c *gin.Context) {
	fh, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "No video file provided")
		return
	}

	r, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), c.PostForm("caption"), fh)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("create reel failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Reel created successfully", "reel": r})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, models.Status(c.Query("status")))
	if err != nil {
		h.log.Error("list reels failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) approved(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, cached, err := h.svc.Approved(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list approved reels failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.PagedEnv(c, response.NewPaged(items, pag), cached)
}

func (h *Handler) getByID(c *gin.Context) {
	r, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get reel failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if r == nil {
		response.NotFound(c, "Reel not found")
		return
	}
	response.OK(c, gin.H{"reel": r})
}

func (h *Handler) update(c *gin.Context) {
	var video *multipart.FileHeader
	if fh, err := c.FormFile("video"); err == nil {
		video = fh
	}

	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), c.PostForm("caption"), video)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("update reel failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if r == nil {
		response.NotFound(c, "Reel not found")
		return
	}
	response.OK(c, gin.H{"message": "Reel updated successfully", "reel": r})
}

func (h *Handler) setStatus(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	r, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("update reel status failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if r == nil {
		response.NotFound(c, "Reel not found")
		return
	}
	response.OK(c, gin.H{"message": "Reel status updated to '" + string(r.Status) + "' successfully", "reel": r})
}

func (h *Handler) toggleLike(c *gin.Context) {
	r, liked, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.log.Error("toggle reel like failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if r == nil {
		response.NotFound(c, "Reel not found")
		return
	}
	msg := "Reel liked successfully"
	if !liked {
		msg = "Reel unliked successfully"
	}
	response.OK(c, gin.H{"message": msg, "liked": liked, "totalLikes": len(r.LikedBy)})
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete reel failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Reel not found")
		return
	}
	response.Message(c, "Reel deleted successfully")
}
