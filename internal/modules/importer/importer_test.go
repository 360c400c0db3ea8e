package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triponation/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseDumpEntry(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		ok         bool
	}{
		{"triponation/blogs.bson", "blogs", true},
		{"dump/Contactus.bson", "contactus", true},
		{"users.bson", "users", true},
		{"triponation/blogs.metadata.json", "", false},
		{"triponation/bookings.bson", "", false},
		{"readme.txt", "", false},
	}
	for _, tt := range tests {
		collection, ok := parseDumpEntry(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.collection, collection, tt.name)
	}
}

func marshalDocs(t *testing.T, docs ...interface{}) []byte {
	t.Helper()
	var out []byte
	for _, d := range docs {
		raw, err := bson.Marshal(d)
		require.NoError(t, err)
		out = append(out, raw...)
	}
	return out
}

func TestDecodeBSONStream(t *testing.T) {
	payload := marshalDocs(t,
		bson.M{"title": "first"},
		bson.M{"title": "second", "views": int32(3)},
	)

	docs, err := decodeBSONStream(payload)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0]["title"])
	assert.Equal(t, "second", docs[1]["title"])
}

func TestDecodeBSONStreamEmpty(t *testing.T) {
	docs, err := decodeBSONStream(nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeBSONStreamTruncated(t *testing.T) {
	payload := marshalDocs(t, bson.M{"title": "x"})

	_, err := decodeBSONStream(payload[:len(payload)-2])
	assert.Error(t, err)

	_, err = decodeBSONStream([]byte{0x01, 0x02})
	assert.Error(t, err)

	// a negative or zero length prefix is rejected
	_, err = decodeBSONStream([]byte{0x00, 0x00, 0x00, 0x80, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestConvertBlog(t *testing.T) {
	oid := primitive.NewObjectID()
	createdBy := primitive.NewObjectID()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	doc := map[string]interface{}{
		"_id":       oid,
		"title":     "Ten Days in Ladakh",
		"slug":      "ten-days-in-ladakh",
		"content":   "body",
		"status":    "approved",
		"views":     int32(12),
		"tags":      primitive.A{"mountains", "roadtrip"},
		"likes":     primitive.A{"u1", "u2"},
		"images":    primitive.A{primitive.M{"url": "https://cdn/x.jpg", "publicId": "x"}},
		"sections":  primitive.A{primitive.M{"heading": "Day 1", "paragraph": "Leh"}},
		"createdBy": createdBy,
		"createdAt": primitive.NewDateTimeFromTime(created),
	}

	b := convertBlog(doc)
	assert.Equal(t, oid.Hex(), b.ID)
	assert.Equal(t, "Ten Days in Ladakh", b.Title)
	assert.Equal(t, models.StatusApproved, b.Status)
	assert.Equal(t, 12, b.Views)
	assert.Equal(t, models.StringArray{"mountains", "roadtrip"}, b.Tags)
	assert.Equal(t, models.StringArray{"u1", "u2"}, b.LikedBy)
	require.Len(t, b.Images, 1)
	assert.Equal(t, "x", b.Images[0].ExternalID)
	require.Len(t, b.Sections, 1)
	assert.Equal(t, "Day 1", b.Sections[0].Heading)
	require.NotNil(t, b.CreatedByID)
	assert.Equal(t, createdBy.Hex(), *b.CreatedByID)
	assert.True(t, b.CreatedAt.Equal(created))
}

func TestConvertBlogDefaults(t *testing.T) {
	b := convertBlog(map[string]interface{}{"_id": "legacy-id"})
	assert.Equal(t, "legacy-id", b.ID)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Nil(t, b.CreatedByID)
}

func TestConvertReelVideoShapes(t *testing.T) {
	nested := convertReel(map[string]interface{}{
		"_id":   "r1",
		"video": primitive.M{"url": "https://cdn/v.mp4", "publicId": "vid"},
	})
	assert.Equal(t, "https://cdn/v.mp4", nested.VideoURL)
	assert.Equal(t, "vid", nested.ExternalID)

	flat := convertReel(map[string]interface{}{
		"_id":      "r2",
		"videoUrl": "https://cdn/w.mp4",
		"publicId": "wid",
	})
	assert.Equal(t, "https://cdn/w.mp4", flat.VideoURL)
	assert.Equal(t, "wid", flat.ExternalID)
}

func TestConvertUser(t *testing.T) {
	expires := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	u := convertUser(map[string]interface{}{
		"_id":         "u1",
		"name":        "Asha",
		"email":       "asha@example.com",
		"role":        "moderator",
		"isVerified":  true,
		"otpExpiresIn": primitive.NewDateTimeFromTime(expires),
	})
	// unknown legacy roles are demoted
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.True(t, u.IsVerified)
	require.NotNil(t, u.OTPExpiresAt)
	assert.True(t, u.OTPExpiresAt.Equal(expires))

	admin := convertUser(map[string]interface{}{"_id": "u2", "role": "superAdmin"})
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)
}

func TestConvertMediaDefaults(t *testing.T) {
	m := convertMedia(map[string]interface{}{"_id": "m1", "url": "https://cdn/a.jpg", "publicId": "a"})
	assert.Equal(t, models.MediaKindImage, m.Kind)
	assert.Equal(t, "uploads", m.Folder)
}
