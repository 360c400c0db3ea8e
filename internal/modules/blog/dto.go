package blog

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/form"
)

// CreateBlogDTO is the multipart payload of the create endpoint. Array
// fields arrive as JSON strings next to the file parts.
type CreateBlogDTO struct {
	Title           string
	Content         string
	Tags            []string
	Sections        []models.Section
	Category        string
	Destination     string
	ReadTime        string
	MetaTitle       string
	MetaDescription string
	Keywords        []string
	Company         string
	Images          []*multipart.FileHeader
}

// UpdateBlogDTO carries the partial update. Nil slices and empty strings
// mean "leave unchanged"; set fields overwrite.
type UpdateBlogDTO struct {
	Title           string
	Content         string
	Tags            []string
	TagsSet         bool
	Sections        []models.Section
	SectionsSet     bool
	ReadTime        string
	MetaTitle       string
	MetaDescription string
	Keywords        []string
	KeywordsSet     bool
	Company         string
	ImagesToDelete  []string
	NewImages       []*multipart.FileHeader
}

// StatusDTO is the body of the status transition endpoint.
type StatusDTO struct {
	Status models.Status `json:"status"`
}

func parseCreateDTO(c *gin.Context) (*CreateBlogDTO, error) {
	dto := &CreateBlogDTO{
		Title:           c.PostForm("title"),
		Content:         c.PostForm("content"),
		Category:        c.PostForm("category"),
		Destination:     c.PostForm("destination"),
		ReadTime:        c.PostForm("readTime"),
		MetaTitle:       c.PostForm("metaTitle"),
		MetaDescription: c.PostForm("metaDescription"),
		Company:         c.PostForm("company"),
	}

	if _, err := form.JSONField(c, "tags", &dto.Tags); err != nil {
		return nil, err
	}
	if _, err := form.JSONField(c, "sections", &dto.Sections); err != nil {
		return nil, err
	}
	if _, err := form.JSONField(c, "keywords", &dto.Keywords); err != nil {
		return nil, err
	}

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		dto.Images = mf.File["images"]
	}
	return dto, nil
}

func parseUpdateDTO(c *gin.Context) (*UpdateBlogDTO, error) {
	dto := &UpdateBlogDTO{
		Title:           c.PostForm("title"),
		Content:         c.PostForm("content"),
		ReadTime:        c.PostForm("readTime"),
		MetaTitle:       c.PostForm("metaTitle"),
		MetaDescription: c.PostForm("metaDescription"),
		Company:         c.PostForm("company"),
	}

	var err error
	if dto.TagsSet, err = form.JSONField(c, "tags", &dto.Tags); err != nil {
		return nil, err
	}
	if dto.SectionsSet, err = form.JSONField(c, "sections", &dto.Sections); err != nil {
		return nil, err
	}
	if dto.KeywordsSet, err = form.JSONField(c, "keywords", &dto.Keywords); err != nil {
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
