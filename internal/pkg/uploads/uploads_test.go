package uploads

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/mediastore"
	"go.uber.org/zap"
)

// fakeStore records uploads and deletes in memory.
type fakeStore struct {
	uploaded []string
	deleted  []string
	failOn   int // fail the Nth upload (1-based), 0 = never
}

func (f *fakeStore) Upload(ctx context.Context, key string, payload []byte, contentType string) (mediastore.UploadResult, error) {
	if f.failOn > 0 && len(f.uploaded)+1 == f.failOn {
		return mediastore.UploadResult{}, errors.New("upload failed")
	}
	f.uploaded = append(f.uploaded, key)
	return mediastore.UploadResult{URL: "https://cdn.example.com/" + key, ExternalID: key}, nil
}

func (f *fakeStore) Delete(ctx context.Context, externalID string) error {
	f.deleted = append(f.deleted, externalID)
	return nil
}

func fileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("payload-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["files"]
}

func newTestManager(store mediastore.Store) *Manager {
	return NewManager(store, nil, zap.NewNop())
}

func TestCollectImages(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store)

	files := fileHeaders(t, "one.jpg", "two.png")
	atts, err := m.CollectImages(context.Background(), files, Options{Folder: "BlogUploads"})
	require.NoError(t, err)
	require.Len(t, atts, 2)

	// attachments come back in request order
	for i, att := range atts {
		assert.Equal(t, store.uploaded[i], att.ExternalID)
		assert.Equal(t, "https://cdn.example.com/"+store.uploaded[i], att.URL)
	}
}

func TestCollectImagesRejectsWholeBatch(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store)

	files := fileHeaders(t, "ok.jpg", "clip.mp4")
	_, err := m.CollectImages(context.Background(), files, Options{Folder: "BlogUploads"})
	require.Error(t, err)

	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "clip.mp4", ute.Filename)

	// pre-validation failed, so nothing reached the store
	assert.Empty(t, store.uploaded)
}

func TestCollectImagesRollsBackPartialBatch(t *testing.T) {
	store := &fakeStore{failOn: 2}
	m := newTestManager(store)

	files := fileHeaders(t, "a.jpg", "b.jpg")
	_, err := m.CollectImages(context.Background(), files, Options{})
	require.Error(t, err)

	// the first upload succeeded and must have been deleted again
	require.Len(t, store.uploaded, 1)
	assert.Equal(t, store.uploaded, store.deleted)
}

func TestCollectVideo(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store)

	fh := fileHeaders(t, "reel.mp4")[0]
	att, err := m.CollectVideo(context.Background(), fh, Options{Folder: "ReelUploads"})
	require.NoError(t, err)
	assert.NotEmpty(t, att.ExternalID)

	_, err = m.CollectVideo(context.Background(), fileHeaders(t, "pic.jpg")[0], Options{})
	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, models.MediaKindVideo, ute.Kind)
}

func TestRemoveDeletesEveryObject(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store)

	atts := []models.Attachment{
		{URL: "u1", ExternalID: "a"},
		{URL: "u2", ExternalID: "b"},
		{URL: "u3", ExternalID: "c"},
	}
	m.Remove(context.Background(), atts)

	// one store delete per attachment, no more
	assert.Equal(t, []string{"a", "b", "c"}, store.deleted)
}

func TestRemoveSkipsEmptyExternalID(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(store)

	m.Remove(context.Background(), []models.Attachment{
		{URL: "u1", ExternalID: "a"},
		{URL: "legacy-row-without-id"},
	})

	assert.Equal(t, []string{"a"}, store.deleted)
}

func TestSplit(t *testing.T) {
	existing := []models.Attachment{
		{URL: "u1", ExternalID: "a"},
		{URL: "u2", ExternalID: "b"},
		{URL: "u3", ExternalID: "c"},
	}

	kept, removed := Split(existing, []string{"b"})
	assert.Equal(t, []models.Attachment{{URL: "u1", ExternalID: "a"}, {URL: "u3", ExternalID: "c"}}, kept)
	assert.Equal(t, []models.Attachment{{URL: "u2", ExternalID: "b"}}, removed)

	kept, removed = Split(existing, nil)
	assert.Len(t, kept, 3)
	assert.Empty(t, removed)

	kept, removed = Split(existing, []string{"a", "b", "c", "ghost"})
	assert.Empty(t, kept)
	assert.Len(t, removed, 3)
}
