package media

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

var videoExts = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".mkv": true}

// ErrNoFile means the multipart request carried no file part.
var ErrNoFile = errors.New("no file uploaded")

type Service struct {
	db      *gorm.DB
	uploads *uploads.Manager
	log     *zap.Logger
}

func NewService(db *gorm.DB, um *uploads.Manager, log *zap.Logger) *Service {
	return &Service{db: db, uploads: um, log: log}
}

// Upload stores a standalone file and records it in the ledger. The kind
// is inferred from the extension.
func (s *Service) Upload(c *gin.Context, userID string) (*models.MediaModel, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, ErrNoFile
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "uploads"
	}

	ctx := c.Request.Context()
	opts := uploads.Options{Folder: folder, UploadedByID: userID}

	var att models.Attachment
	if videoExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		att, err = s.uploads.CollectVideo(ctx, fh, opts)
	} else {
		var atts []models.Attachment
		atts, err = s.uploads.CollectImages(ctx, []*multipart.FileHeader{fh}, opts)
		if err == nil {
			att = atts[0]
		}
	}
	if err != nil {
		return nil, err
	}

	var row models.MediaModel
	if err := s.db.WithContext(ctx).First(&row, "external_id = ?", att.ExternalID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) List(ctx context.Context, q pagination.Query, kind, folder string) ([]models.MediaModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.MediaModel{}).Order("created_at DESC")
	if kind != "" {
		tx = tx.Where("kind = ?", kind)
	}
	if folder != "" {
		tx = tx.Where("folder = ?", folder)
	}
	var items []models.MediaModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	var row models.MediaModel
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.uploads.Remove(ctx, []models.Attachment{{URL: row.URL, ExternalID: row.ExternalID}})
	return true, nil
}

// SweepOrphans removes unclaimed uploads older than maxAge: store objects
// whose owning record never materialized.
func (s *Service) SweepOrphans(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)

	var rows []models.MediaModel
	err := s.db.WithContext(ctx).
		Where("context_id IS NULL AND created_at < ?", cutoff).
		Find(&rows).Error
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		s.uploads.Remove(ctx, []models.Attachment{{URL: row.URL, ExternalID: row.ExternalID}})
	}
	if len(rows) > 0 {
		s.log.Info("orphan media sweep finished", zap.Int("removed", len(rows)))
	}
	return len(rows), nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/media", authMW)
	g.POST("/upload", h.upload)

	a := g.Group("", middleware.RequireAdmin())
	a.GET("", h.list)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	row, err := h.svc.Upload(c, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			response.BadRequest(c, "No file uploaded")
			return
		}
		var ue *uploads.UnsupportedTypeError
		if errors.As(err, &ue) {
			response.BadRequest(c, "Unsupported file type")
			return
		}
		h.log.Error("media upload failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "File uploaded successfully", "data": row})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, c.Query("type"), c.Query("folder"))
	if err != nil {
		h.log.Error("list media failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete media failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Media not found")
		return
	}
	response.Message(c, "Media deleted successfully")
}
