package models

import "time"

// User roles, in ascending order of privilege.
const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

// UserModel is a platform account. Passwords and OTPs are stored as bcrypt
// hashes only.
type UserModel struct {
	Base
	Name         string      `json:"name"      gorm:"not null"`
	Email        string      `json:"email"     gorm:"uniqueIndex;not null"`
	Phone        string      `json:"phone"`
	Password     string      `json:"-"         gorm:"not null"`
	Role         string      `json:"role"      gorm:"type:varchar(16);default:customer;index"`
	ProfileImage *Attachment `json:"profileImage" gorm:"type:longtext;serializer:json"`
	OTP          string      `json:"-"`
	OTPExpiresAt *time.Time  `json:"-"`
	IsVerified   bool        `json:"isVerified" gorm:"default:false"`
}

func (UserModel) TableName() string { return "users" }

// PublicProfile is the reduced user shape embedded in content responses.
type PublicProfile struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	ProfileImage *Attachment `json:"profileImage"`
}

// Public returns the reduced profile used when populating createdBy fields.
func (u *UserModel) Public() *PublicProfile {
	if u == nil {
		return nil
	}
	return &PublicProfile{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage}
}

// ValidRole reports whether r is a known role value.
func ValidRole(r string) bool {
	return r == RoleCustomer || r == RoleAdmin || r == RoleSuperAdmin
}
