package models

// ReviewModel is a customer review of a destination.
type ReviewModel struct {
	Base
	UserID      string     `json:"-"           gorm:"index;not null"`
	User        *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Destination string     `json:"destination" gorm:"index"`
	Rating      int        `json:"rating"      gorm:"not null"`
	ReviewText  string     `json:"reviewText"  gorm:"type:text"`
}

func (ReviewModel) TableName() string { return "reviews" }
