package models

// BlogModel is a travel blog post with attached images and SEO metadata.
type BlogModel struct {
	Base
	Title           string       `json:"title"           gorm:"not null"`
	Slug            string       `json:"slug"            gorm:"uniqueIndex;not null"`
	Content         string       `json:"content"         gorm:"type:longtext"`
	Images          []Attachment `json:"images"          gorm:"type:longtext;serializer:json"`
	Sections        []Section    `json:"sections"        gorm:"type:longtext;serializer:json"`
	Tags            StringArray  `json:"tags"            gorm:"type:json;serializer:json"`
	Category        string       `json:"category"        gorm:"index"`
	Destination     string       `json:"destination"`
	ReadTime        string       `json:"readTime"`
	MetaTitle       string       `json:"metaTitle"`
	MetaDescription string       `json:"metaDescription"`
	Keywords        StringArray  `json:"keywords"        gorm:"type:json;serializer:json"`
	Company         string       `json:"company"         gorm:"default:Trip'O'Nation"`
	Status          Status       `json:"status"          gorm:"type:varchar(16);default:pending;index"`
	Views           int          `json:"views"           gorm:"default:0"`
	LikedBy         StringArray  `json:"likes"           gorm:"type:longtext;serializer:json"`
	CreatedByID     *string      `json:"-"               gorm:"index"`
	CreatedBy       *UserModel   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (BlogModel) TableName() string { return "blogs" }
