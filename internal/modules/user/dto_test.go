package user

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseSignupDTO(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// a role field in the form must have no effect on the parsed DTO
	body := url.Values{
		"name":     {"Asha"},
		"email":    {"asha@example.com"},
		"password": {"hunter22"},
		"phone":    {"9999999999"},
		"role":     {"superAdmin"},
	}
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req

	dto := parseSignupDTO(c)
	assert.Equal(t, "Asha", dto.Name)
	assert.Equal(t, "asha@example.com", dto.Email)
	assert.Equal(t, "hunter22", dto.Password)
	assert.Equal(t, "9999999999", dto.Phone)
	assert.Nil(t, dto.ProfileImage)
	assert.Equal(t, &SignupDTO{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter22",
		Phone:    "9999999999",
	}, dto)
}
