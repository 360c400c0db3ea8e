package story

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/form"
)

type CreateStoryDTO struct {
	Title       string
	Content     string
	Tags        []string
	Sections    []models.Section
	Category    string
	Destination string
	Images      []*multipart.FileHeader
}

type UpdateStoryDTO struct {
	Title          string
	Content        string
	Tags           []string
	TagsSet        bool
	Sections       []models.Section
	SectionsSet    bool
	Category       string
	Destination    string
	ImagesToDelete []string
	NewImages      []*multipart.FileHeader
}

type StatusDTO struct {
	Status models.Status `json:"status"`
}

func parseCreateDTO(c *gin.Context) (*CreateStoryDTO, error) {
	dto := &CreateStoryDTO{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		Category:    c.PostForm("category"),
		Destination: c.PostForm("destination"),
	}

	if _, err := form.JSONField(c, "tags", &dto.Tags); err != nil {
		return nil, err
	}
	if _, err := form.JSONField(c, "sections", &dto.Sections); err != nil {
		return nil, err
	}

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		dto.Images = mf.File["images"]
	}
	return dto, nil
}

func parseUpdateDTO(c *gin.Context) (*UpdateStoryDTO, error) {
	dto := &UpdateStoryDTO{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		Category:    c.PostForm("category"),
		Destination: c.PostForm("destination"),
	}

	var err error
	if dto.TagsSet, err = form.JSONField(c, "tags", &dto.Tags); err != nil {
		return nil, err
	}
	if dto.SectionsSet, err = form.JSONField(c, "sections", &dto.Sections); err != nil {
		return nil, err
	}
	if dto.ImagesToDelete, _, err = form.StringArray(c, "imagesToDelete"); err != nil {
		return nil, err
	}

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		dto.NewImages = mf.File["newImages"]
	}
	return dto, nil
}
