package user

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// SignupDTO is the multipart signup payload. An optional profileImage file
// rides alongside the text fields. There is no role field: public signup
// always creates customers, admins come from the superAdmin endpoint.
type SignupDTO struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	ProfileImage *multipart.FileHeader
}

type VerifyOTPDTO struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp"   binding:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func parseSignupDTO(c *gin.Context) *SignupDTO {
	dto := &SignupDTO{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Phone:    c.PostForm("phone"),
	}
	if fh, err := c.FormFile("profileImage"); err == nil {
		dto.ProfileImage = fh
	}
	return dto
}
