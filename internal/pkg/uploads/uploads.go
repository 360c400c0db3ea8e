package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/mediastore"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true, ".svg": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".mkv": true,
}

// UnsupportedTypeError is returned when a file's extension is outside the
// allow-list for the requested kind. Handlers map it to a 400.
type UnsupportedTypeError struct {
	Filename string
	Kind     string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported %s type: %s", e.Kind, e.Filename)
}

// Manager moves files into the media store and keeps the media ledger in
// step: every stored object gets a row, claimed by its owning record once
// that record exists.
type Manager struct {
	store mediastore.Store
	db    *gorm.DB
	log   *zap.Logger
}

func NewManager(store mediastore.Store, db *gorm.DB, log *zap.Logger) *Manager {
	return &Manager{store: store, db: db, log: log}
}

// Options carry where an upload lands and who made it.
type Options struct {
	Folder       string
	UploadedByID string
}

// CollectImages uploads the given files in request order and returns the
// attachments in the same order. On any failure the objects stored so far
// in this batch are removed again.
func (m *Manager) CollectImages(ctx context.Context, files []*multipart.FileHeader, opts Options) ([]models.Attachment, error) {
	return m.collect(ctx, files, imageExts, models.MediaKindImage, opts)
}

// CollectVideo uploads a single video file.
func (m *Manager) CollectVideo(ctx context.Context, fh *multipart.FileHeader, opts Options) (models.Attachment, error) {
	atts, err := m.collect(ctx, []*multipart.FileHeader{fh}, videoExts, models.MediaKindVideo, opts)
	if err != nil {
		return models.Attachment{}, err
	}
	return atts[0], nil
}

func (m *Manager) collect(ctx context.Context, files []*multipart.FileHeader, allowed map[string]bool, kind string, opts Options) ([]models.Attachment, error) {
	// Validate the whole batch before touching the store so a bad file
	// late in the list does not cost uploads.
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowed[ext] {
			return nil, &UnsupportedTypeError{Filename: fh.Filename, Kind: kind}
		}
	}

	atts := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		payload, err := readAll(fh)
		if err != nil {
			m.rollback(ctx, atts)
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}

		key := mediastore.BuildObjectKey(opts.Folder, fh.Filename)
		res, err := m.store.Upload(ctx, key, payload, mediastore.DetectContentType(fh.Filename, payload))
		if err != nil {
			m.rollback(ctx, atts)
			return nil, err
		}

		att := models.Attachment{URL: res.URL, ExternalID: res.ExternalID}
		if err := m.record(att, kind, opts); err != nil {
			m.rollback(ctx, append(atts, att))
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, nil
}

func (m *Manager) record(att models.Attachment, kind string, opts Options) error {
	if m.db == nil {
		return nil
	}
	row := models.MediaModel{
		URL:        att.URL,
		ExternalID: att.ExternalID,
		Kind:       kind,
		Folder:     opts.Folder,
	}
	if opts.UploadedByID != "" {
		row.UploadedByID = &opts.UploadedByID
	}
	return m.db.Create(&row).Error
}

// Claim stamps ledger rows with their owning record so the orphan sweep
// leaves them alone.
func (m *Manager) Claim(ctx context.Context, atts []models.Attachment, contextType, contextID string) {
	if m.db == nil || len(atts) == 0 {
		return
	}
	ids := externalIDs(atts)
	err := m.db.WithContext(ctx).Model(&models.MediaModel{}).
		Where("external_id IN ?", ids).
		Updates(map[string]any{"context_type": contextType, "context_id": contextID}).Error
	if err != nil {
		m.log.Warn("claim media rows failed", zap.Strings("externalIds", ids), zap.Error(err))
	}
}

// Remove deletes the objects from the store and drops their ledger rows.
// Store failures are logged, not returned: the record cascade must not be
// blocked by a flaky media backend.
func (m *Manager) Remove(ctx context.Context, atts []models.Attachment) {
	for _, att := range atts {
		if att.ExternalID == "" {
			continue
		}
		if err := m.store.Delete(ctx, att.ExternalID); err != nil {
			m.log.Warn("delete media object failed", zap.String("externalId", att.ExternalID), zap.Error(err))
		}
	}
	if m.db != nil && len(atts) > 0 {
		if err := m.db.WithContext(ctx).Where("external_id IN ?", externalIDs(atts)).Delete(&models.MediaModel{}).Error; err != nil {
			m.log.Warn("delete media rows failed", zap.Error(err))
		}
	}
}

func (m *Manager) rollback(ctx context.Context, atts []models.Attachment) {
	if len(atts) > 0 {
		m.Remove(ctx, atts)
	}
}

func externalIDs(atts []models.Attachment) []string {
	ids := make([]string, 0, len(atts))
	for _, att := range atts {
		if att.ExternalID != "" {
			ids = append(ids, att.ExternalID)
		}
	}
	return ids
}

// Split partitions existing attachments by the ids marked for deletion,
// preserving the order of the kept ones.
func Split(existing []models.Attachment, toDelete []string) (kept, removed []models.Attachment) {
	marked := make(map[string]bool, len(toDelete))
	for _, id := range toDelete {
		marked[id] = true
	}
	for _, att := range existing {
		if marked[att.ExternalID] {
			removed = append(removed, att)
		} else {
			kept = append(kept, att)
		}
	}
	return kept, removed
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
