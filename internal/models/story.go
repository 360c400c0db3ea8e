package models

// StoryCategories are the accepted story category values.
var StoryCategories = []string{"adventure", "culture", "food and drink", "photography", "relaxation"}

// StoryModel is a traveller story awaiting moderation before it appears
// on the public site.
type StoryModel struct {
	Base
	Title       string       `json:"title"       gorm:"not null"`
	Content     string       `json:"content"     gorm:"type:longtext"`
	Tags        StringArray  `json:"tags"        gorm:"type:json;serializer:json"`
	Category    string       `json:"category"    gorm:"index;not null"`
	Destination string       `json:"destination" gorm:"not null"`
	Images      []Attachment `json:"images"      gorm:"type:longtext;serializer:json"`
	Sections    []Section    `json:"sections"    gorm:"type:longtext;serializer:json"`
	Status      Status       `json:"status"      gorm:"type:varchar(16);default:pending;index"`
	CreatedByID *string      `json:"-"           gorm:"index"`
	CreatedBy   *UserModel   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (StoryModel) TableName() string { return "stories" }

// ValidStoryCategory reports whether c is one of the accepted categories.
func ValidStoryCategory(c string) bool {
	for _, v := range StoryCategories {
		if v == c {
			return true
		}
	}
	return false
}
