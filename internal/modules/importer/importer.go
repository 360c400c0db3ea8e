// Package importer ingests mongodump archives from the legacy deployment
// and replays them into MySQL.
package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/response"
)

// Result summarizes one import run.
type Result struct {
	Collections map[string]int `json:"collections"`
	Skipped     int            `json:"skipped"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// ImportZip walks a mongodump ZIP and inserts every recognized collection.
// Existing rows with the same primary key are left untouched, so reruns
// are safe.
func (s *Service) ImportZip(ctx context.Context, data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	res := &Result{Collections: make(map[string]int)}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, file := range zr.File {
			collection, ok := parseDumpEntry(file.Name)
			if !ok {
				continue
			}

			docs, err := readBSONDocs(file)
			if err != nil {
				return fmt.Errorf("decode %s: %w", file.Name, err)
			}

			inserted, skipped, err := s.insertCollection(tx, collection, docs)
			if err != nil {
				return fmt.Errorf("import %s: %w", collection, err)
			}
			res.Collections[collection] += inserted
			res.Skipped += skipped
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("legacy import finished",
		zap.Any("collections", res.Collections),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (s *Service) insertCollection(tx *gorm.DB, collection string, docs []map[string]interface{}) (inserted, skipped int, err error) {
	for _, doc := range docs {
		var row interface{}
		switch collection {
		case "blogs":
			r := convertBlog(doc)
			row = &r
		case "stories":
			r := convertStory(doc)
			row = &r
		case "reels":
			r := convertReel(doc)
			row = &r
		case "reviews":
			r := convertReview(doc)
			row = &r
		case "enquiries":
			r := convertEnquiry(doc)
			row = &r
		case "contacts", "contactus":
			r := convertContact(doc)
			row = &r
		case "users":
			r := convertUser(doc)
			row = &r
		case "media":
			r := convertMedia(doc)
			row = &r
		default:
			return inserted, skipped, nil
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
		if result.Error != nil {
			return inserted, skipped, result.Error
		}
		if result.RowsAffected == 0 {
			skipped++
		} else {
			inserted++
		}
	}
	return inserted, skipped, nil
}

// parseDumpEntry maps a ZIP entry to a known collection name. mongodump
// lays dumps out as <db>/<collection>.bson plus metadata JSON files.
func parseDumpEntry(name string) (string, bool) {
	base := strings.ToLower(strings.TrimSpace(path.Base(name)))
	if !strings.HasSuffix(base, ".bson") {
		return "", false
	}
	collection := strings.TrimSuffix(base, ".bson")
	switch collection {
	case "blogs", "stories", "reels", "reviews", "enquiries", "contacts", "contactus", "users", "media":
		return collection, true
	default:
		return "", false
	}
}

// readBSONDocs decodes a concatenated BSON document stream, the on-disk
// format of mongodump collection files.
func readBSONDocs(file *zip.File) ([]map[string]interface{}, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return decodeBSONStream(payload)
}

func decodeBSONStream(payload []byte) ([]map[string]interface{}, error) {
	docs := make([]map[string]interface{}, 0)
	cursor := 0
	for cursor < len(payload) {
		if cursor+4 > len(payload) {
			return nil, fmt.Errorf("truncated bson stream")
		}
		docLen := int(int32(binary.LittleEndian.Uint32(payload[cursor : cursor+4])))
		if docLen <= 0 || cursor+docLen > len(payload) {
			return nil, fmt.Errorf("invalid bson document length %d", docLen)
		}
		var doc map[string]interface{}
		if err := bson.Unmarshal(payload[cursor:cursor+docLen], &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		cursor += docLen
	}
	return docs, nil
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/admin/import", authMW, middleware.RequireRoles(models.RoleSuperAdmin))
	g.POST("", h.importDump)
}

func (h *Handler) importDump(c *gin.Context) {
	fh, err := c.FormFile("dump")
	if err != nil {
		response.BadRequest(c, "No dump file provided")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Unreadable dump file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.BadRequest(c, "Unreadable dump file")
		return
	}

	res, err := h.svc.ImportZip(c.Request.Context(), data)
	if err != nil {
		if strings.Contains(err.Error(), "open archive") {
			response.BadRequest(c, "Invalid ZIP archive")
			return
		}
		h.log.Error("legacy import failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "Import completed", "result": res})
}
