package models

// Media resource kinds.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// MediaModel records a standalone upload in the media store. ContextID is
// set when an entity claims the upload; unclaimed records are swept by the
// orphan cleanup job once they exceed the configured age.
type MediaModel struct {
	Base
	URL          string  `json:"url"       gorm:"not null"`
	ExternalID   string  `json:"publicId"  gorm:"uniqueIndex;not null"`
	Kind         string  `json:"type"      gorm:"type:varchar(16);default:image"`
	Folder       string  `json:"folder"    gorm:"default:uploads"`
	UploadedByID *string `json:"uploadedBy" gorm:"index"`
	ContextID    *string `json:"contextId"  gorm:"index"`
	ContextType  string  `json:"contextType"`
}

func (MediaModel) TableName() string { return "media" }
