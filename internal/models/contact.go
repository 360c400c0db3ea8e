package models

// ContactModel is a contact-us form submission.
// Status cycles between pending and closed.
type ContactModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" gorm:"not null"`
	Message string `json:"message" gorm:"type:text;not null"`
	Status  Status `json:"status"  gorm:"type:varchar(16);default:pending;index"`
}

func (ContactModel) TableName() string { return "contacts" }
