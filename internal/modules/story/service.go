package story

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/config"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/cache"
	"github.com/triponation/core/internal/pkg/moderation"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

const uploadFolder = "StoryUploads"

// Stories are gated strictly: approve only from pending, revert only from
// approved.
var statusPolicy = moderation.NewDirectional("Story", models.StatusPending, models.StatusApproved)

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

func (s *Service) Create(ctx context.Context, userID string, dto *CreateStoryDTO) (*models.StoryModel, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return nil, &ErrValidation{Msg: "Title is required"}
	}
	if strings.TrimSpace(dto.Destination) == "" {
		return nil, &ErrValidation{Msg: "Destination is required"}
	}
	if dto.Category == "" || !models.ValidStoryCategory(dto.Category) {
		return nil, &ErrValidation{Msg: "Invalid story category: " + dto.Category}
	}

	images, err := s.uploads.CollectImages(ctx, dto.Images, uploads.Options{
		Folder:       uploadFolder,
		UploadedByID: userID,
	})
	if err != nil {
		return nil, err
	}

	st := models.StoryModel{
		Title:       dto.Title,
		Content:     dto.Content,
		Tags:        dto.Tags,
		Category:    dto.Category,
		Destination: dto.Destination,
		Images:      images,
		Sections:    dto.Sections,
		Status:      models.StatusPending,
		CreatedByID: &userID,
	}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		s.uploads.Remove(ctx, images)
		return nil, err
	}
	s.uploads.Claim(ctx, images, "story", st.ID)
	s.invalidate(ctx)

	return s.GetByID(ctx, st.ID)
}

func (s *Service) List(ctx context.Context, q pagination.Query, search string, status models.Status) ([]models.StoryModel, response.Paging, error) {
	tx := s.db.WithContext(ctx).Model(&models.StoryModel{}).Order("created_at DESC")
	if search != "" {
		tx = tx.Where("title LIKE ?", "%"+search+"%")
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var items []models.StoryModel
	pag, err := pagination.Paginate(s.withCreator(tx), q, &items)
	return items, pag, err
}

type approvedPage struct {
	Items  []models.StoryModel `json:"items"`
	Paging response.Paging     `json:"paging"`
}

func (s *Service) Approved(ctx context.Context, q pagination.Query, destination, category string) ([]models.StoryModel, response.Paging, bool, error) {
	key := cache.Key("approvedStories", destination, category, strconv.Itoa(q.Page), strconv.Itoa(q.Limit))

	var page approvedPage
	if hit, err := s.cache.GetJSON(ctx, key, &page); err != nil {
		s.log.Warn("approved stories cache read failed", zap.Error(err))
	} else if hit {
		return page.Items, page.Paging, true, nil
	}

	tx := s.db.WithContext(ctx).Model(&models.StoryModel{}).
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC")
	if destination != "" {
		tx = tx.Where("destination = ?", destination)
	}
	if category != "" && strings.ToLower(category) != "all" {
		tx = tx.Where("category = ?", category)
	}

	var items []models.StoryModel
	pag, err := pagination.Paginate(s.withCreator(tx), q, &items)
	if err != nil {
		return nil, response.Paging{}, false, err
	}

	if err := s.cache.SetJSON(ctx, key, approvedPage{Items: items, Paging: pag}, s.ttl.ApprovedTTL()); err != nil {
		s.log.Warn("approved stories cache write failed", zap.Error(err))
	}
	return items, pag, false, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.StoryModel, error) {
	var st models.StoryModel
	err := s.withCreator(s.db.WithContext(ctx)).First(&st, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateStoryDTO) (*models.StoryModel, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil || st == nil {
		return st, err
	}

	if dto.Category != "" && !models.ValidStoryCategory(dto.Category) {
		return nil, &ErrValidation{Msg: "Invalid story category: " + dto.Category}
	}

	if len(dto.ImagesToDelete) > 0 {
		kept, removed := uploads.Split(st.Images, dto.ImagesToDelete)
		s.uploads.Remove(ctx, removed)
		st.Images = kept
	}

	if len(dto.NewImages) > 0 {
		added, err := s.uploads.CollectImages(ctx, dto.NewImages, uploads.Options{
			Folder: uploadFolder,
		})
		if err != nil {
			return nil, err
		}
		s.uploads.Claim(ctx, added, "story", st.ID)
		st.Images = append(st.Images, added...)
	}

	if dto.Title != "" {
		st.Title = dto.Title
	}
	if dto.Content != "" {
		st.Content = dto.Content
	}
	if dto.TagsSet {
		st.Tags = dto.Tags
	}
	if dto.SectionsSet {
		st.Sections = dto.Sections
	}
	if dto.Category != "" {
		st.Category = dto.Category
	}
	if dto.Destination != "" {
		st.Destination = dto.Destination
	}

	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return st, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, next models.Status) (*models.StoryModel, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil || st == nil {
		return st, err
	}
	if err := statusPolicy.Check(st.Status, next); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(st).Update("status", next).Error; err != nil {
		return nil, err
	}
	st.Status = next
	s.invalidate(ctx)
	return st, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if st == nil {
		return false, nil
	}

	s.uploads.Remove(ctx, st.Images)
	if err := s.db.WithContext(ctx).Delete(&models.StoryModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return true, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DelPattern(ctx, cache.Key("approvedStories")+"*"); err != nil {
		s.log.Warn("approved stories cache invalidation failed", zap.Error(err))
	}
}
