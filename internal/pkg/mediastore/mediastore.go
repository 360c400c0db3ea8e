package mediastore

import "context"

// UploadResult identifies a stored object. ExternalID is the only handle
// needed to free the object later; URL is the public address.
type UploadResult struct {
	URL        string
	ExternalID string
}

// Store is the external media store. Delete treats an already-missing
// object as success, since the authoritative removal either happened
// earlier or the object never existed.
type Store interface {
	Upload(ctx context.Context, objectKey string, payload []byte, contentType string) (UploadResult, error)
	Delete(ctx context.Context, externalID string) error
}
