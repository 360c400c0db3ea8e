package blog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/config"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/cache"
	"github.com/triponation/core/internal/pkg/markdown"
	"github.com/triponation/core/internal/pkg/moderation"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/slug"
	"github.com/triponation/core/internal/pkg/uploads"
)

const uploadFolder = "BlogUploads"

var statusPolicy = moderation.NewToggle("Blog", models.StatusPending, models.StatusApproved)

// ErrValidation marks client input errors surfaced as 400s.
type ErrValidation struct{ Msg string }

func (e *ErrValidation) Error() string { return e.Msg }

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

func (s *Service) Create(ctx context.Context, userID string, dto *CreateBlogDTO) (*models.BlogModel, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return nil, &ErrValidation{Msg: "Title is required"}
	}

	images, err := s.uploads.CollectImages(ctx, dto.Images, uploads.Options{
		Folder:       uploadFolder,
		UploadedByID: userID,
	})
	if err != nil {
		return nil, err
	}

	company := dto.Company
	if company == "" {
		company = "Trip'O'Nation"
	}

	b := models.BlogModel{
		Title:           dto.Title,
		Slug:            s.uniqueSlug(dto.Title),
		Content:         dto.Content,
		Images:          images,
		Sections:        dto.Sections,
		Tags:            dto.Tags,
		Category:        dto.Category,
		Destination:     dto.Destination,
		ReadTime:        dto.ReadTime,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
		Keywords:        dto.Keywords,
		Company:         company,
		Status:          models.StatusPending,
		CreatedByID:     &userID,
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		s.uploads.Remove(ctx, images)
		return nil, err
	}
	s.uploads.Claim(ctx, images, "blog", b.ID)
	s.invalidate(ctx, b.ID)

	return s.GetByID(ctx, b.ID)
}

// uniqueSlug derives a slug from the title, suffixing a counter when the
// base form is already taken.
func (s *Service) uniqueSlug(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "blog"
	}
	candidate := base
	for i := 2; ; i++ {
		var n int64
		s.db.Model(&models.BlogModel{}).Where("slug = ?", candidate).Count(&n)
		if n == 0 {
			return candidate
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

func (s *Service) List(ctx context.Context, q pagination.Query, search string, status models.Status) ([]models.BlogModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.BlogModel{}).Order("created_at DESC")
	if search != "" {
		tx = tx.Where("title LIKE ?", "%"+search+"%")
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var items []models.BlogModel
	pag, err := pagination.Paginate(s.withCreator(tx), q, &items)
	return items, pag, err
}

type approvedPage struct {
	Items  []models.BlogModel `json:"items"`
	Paging response.Paging    `json:"paging"`
}

// Approved lists approved blogs with optional category and tag filters,
// memoized in Redis. The cached return reports a replay.
func (s *Service) Approved(ctx context.Context, q pagination.Query, category, tag string) ([]models.BlogModel, response.Paging, bool, error) {
	key := cache.Key("approvedBlogs", category, tag, strconv.Itoa(q.Page), strconv.Itoa(q.Limit))

	var page approvedPage
	if hit, err := s.cache.GetJSON(ctx, key, &page); err != nil {
		s.log.Warn("approved blogs cache read failed", zap.Error(err))
	} else if hit {
		return page.Items, page.Paging, true, nil
	}

	tx := s.db.WithContext(ctx).Model(&models.BlogModel{}).
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC")
	if category != "" && strings.ToLower(category) != "all" {
		tx = tx.Where("category = ?", category)
	}
	if tag != "" {
		// Tags are a JSON column; a LIKE on the serialized form mirrors the
		// case-insensitive membership match of the original queries.
		tx = tx.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(tag))+"%")
	}

	var items []models.BlogModel
	pag, err := pagination.Paginate(s.withCreator(tx), q, &items)
	if err != nil {
		return nil, response.Paging{}, false, err
	}

	if err := s.cache.SetJSON(ctx, key, approvedPage{Items: items, Paging: pag}, s.ttl.ApprovedTTL()); err != nil {
		s.log.Warn("approved blogs cache write failed", zap.Error(err))
	}
	return items, pag, false, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.BlogModel, error) {
	var b models.BlogModel
	err := s.withCreator(s.db.WithContext(ctx)).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByIDCached is the read-side variant of GetByID with a short detail
// cache in front. Mutations clear the key.
func (s *Service) GetByIDCached(ctx context.Context, id string) (*models.BlogModel, bool, error) {
	key := cache.Key("blog", id)
	var cached models.BlogModel
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.log.Warn("blog cache read failed", zap.Error(err))
	} else if hit {
		return &cached, true, nil
	}

	b, err := s.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, false, err
	}
	if err := s.cache.SetJSON(ctx, key, b, s.ttl.DetailTTL()); err != nil {
		s.log.Warn("blog cache write failed", zap.Error(err))
	}
	return b, false, nil
}

// GetBySlug fetches a blog for public reading and counts the view. The
// view bump keeps slug reads uncacheable.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.BlogModel, error) {
	var b models.BlogModel
	err := s.withCreator(s.db.WithContext(ctx)).First(&b, "slug = ?", slugStr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&b).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		s.log.Warn("view counter bump failed", zap.String("blogId", b.ID), zap.Error(err))
	}
	b.Views++
	return &b, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateBlogDTO) (*models.BlogModel, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, err
	}

	// Deletions run before new uploads so a replaced image frees its
	// object even when the same request adds the successor.
	if len(dto.ImagesToDelete) > 0 {
		kept, removed := uploads.Split(b.Images, dto.ImagesToDelete)
		s.uploads.Remove(ctx, removed)
		b.Images = kept
	}

	if len(dto.NewImages) > 0 {
		added, err := s.uploads.CollectImages(ctx, dto.NewImages, uploads.Options{
			Folder:       uploadFolder,
			UploadedByID: derefOr(b.CreatedByID, ""),
		})
		if err != nil {
			return nil, err
		}
		s.uploads.Claim(ctx, added, "blog", b.ID)
		b.Images = append(b.Images, added...)
	}

	if dto.Title != "" {
		b.Title = dto.Title
	}
	if dto.Content != "" {
		b.Content = dto.Content
	}
	if dto.TagsSet {
		b.Tags = dto.Tags
	}
	if dto.SectionsSet {
		b.Sections = dto.Sections
	}
	if dto.ReadTime != "" {
		b.ReadTime = dto.ReadTime
	}
	if dto.MetaTitle != "" {
		b.MetaTitle = dto.MetaTitle
	}
	if dto.MetaDescription != "" {
		b.MetaDescription = dto.MetaDescription
	}
	if dto.KeywordsSet {
		b.Keywords = dto.Keywords
	}
	if dto.Company != "" {
		b.Company = dto.Company
	}

	if err := s.db.WithContext(ctx).Save(b).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx, b.ID)
	return b, nil
}

// SetStatus applies the moderation transition. Policy violations come back
// as moderation errors for the handler to turn into 400s.
func (s *Service) SetStatus(ctx context.Context, id string, next models.Status) (*models.BlogModel, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, err
	}
	if err := statusPolicy.Check(b.Status, next); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(b).Update("status", next).Error; err != nil {
		return nil, err
	}
	b.Status = next
	s.invalidate(ctx, b.ID)
	return b, nil
}

// ToggleLike flips the caller's membership in the engagement set and
// returns the new state plus total.
func (s *Service) ToggleLike(ctx context.Context, id, userID string) (*models.BlogModel, bool, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, false, err
	}

	var liked bool
	b.LikedBy, liked = b.LikedBy.Toggle(userID)

	if err := s.db.WithContext(ctx).Model(b).Update("liked_by", b.LikedBy).Error; err != nil {
		return nil, false, err
	}
	return b, liked, nil
}

// Rendered returns the blog with its markdown content converted to HTML.
func (s *Service) Rendered(ctx context.Context, id string) (*models.BlogModel, string, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, "", err
	}
	html, err := markdown.Render(b.Content)
	if err != nil {
		return nil, "", fmt.Errorf("render blog %s: %w", id, err)
	}
	return b, html, nil
}

// Delete removes the blog and cascades over its stored images.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}

	s.uploads.Remove(ctx, b.Images)
	if err := s.db.WithContext(ctx).Delete(&models.BlogModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.invalidate(ctx, id)
	return true, nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if err := s.cache.DelPattern(ctx, cache.Key("approvedBlogs")+"*"); err != nil {
		s.log.Warn("approved blogs cache invalidation failed", zap.Error(err))
	}
	if err := s.cache.Del(ctx, cache.Key("blog", id)); err != nil {
		s.log.Warn("blog cache invalidation failed", zap.String("blogId", id), zap.Error(err))
	}
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
