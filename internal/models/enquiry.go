package models

// EnquiryModel is a trip enquiry submitted from the public site.
// Status cycles between pending and closed.
type EnquiryModel struct {
	Base
	Name               string `json:"name"               gorm:"not null"`
	Email              string `json:"email"              gorm:"not null"`
	Phone              string `json:"phone"`
	TravelDates        string `json:"travelDates"        gorm:"not null"`
	NumberOfTravellers int    `json:"numberOfTravellers" gorm:"not null"`
	SpecialRequests    string `json:"specialRequests"    gorm:"type:text"`
	Status             Status `json:"status"             gorm:"type:varchar(16);default:pending;index"`
}

func (EnquiryModel) TableName() string { return "enquiries" }
