package models

// ReelModel is a short travel video with a single stored attachment.
type ReelModel struct {
	Base
	VideoURL    string      `json:"videoUrl"  gorm:"not null"`
	ExternalID  string      `json:"publicId"  gorm:"not null"`
	Caption     string      `json:"caption"`
	Status      Status      `json:"status"    gorm:"type:varchar(16);default:pending;index"`
	LikedBy     StringArray `json:"likes"     gorm:"type:longtext;serializer:json"`
	CreatedByID *string     `json:"-"         gorm:"index"`
	CreatedBy   *UserModel  `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (ReelModel) TableName() string { return "reels" }

// Video returns the reel's stored file as an attachment for cascade cleanup.
func (r ReelModel) Video() Attachment {
	return Attachment{URL: r.VideoURL, ExternalID: r.ExternalID}
}
