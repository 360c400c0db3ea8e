package importer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/triponation/core/internal/models"
)

// The legacy deployment stored documents in MongoDB; these converters map
// decoded BSON documents onto the relational models, preserving ids as
// ObjectID hex strings so cross-references survive the move.

func docString(doc map[string]interface{}, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return ""
	}
}

func docID(doc map[string]interface{}) string {
	return docString(doc, "_id")
}

func docRef(doc map[string]interface{}, key string) *string {
	if s := docString(doc, key); s != "" {
		return &s
	}
	return nil
}

func docInt(doc map[string]interface{}, key string) int {
	switch v := doc[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func docBool(doc map[string]interface{}, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docTime(doc map[string]interface{}, key string) time.Time {
	switch v := doc[key].(type) {
	case primitive.DateTime:
		return v.Time()
	case time.Time:
		return v
	default:
		return time.Time{}
	}
}

func docTimePtr(doc map[string]interface{}, key string) *time.Time {
	t := docTime(doc, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func asDoc(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case primitive.M:
		return map[string]interface{}(m)
	case map[string]interface{}:
		return m
	default:
		return nil
	}
}

func asArray(v interface{}) []interface{} {
	switch a := v.(type) {
	case primitive.A:
		return []interface{}(a)
	case []interface{}:
		return a
	default:
		return nil
	}
}

func docStrings(doc map[string]interface{}, key string) models.StringArray {
	arr := asArray(doc[key])
	out := make(models.StringArray, 0, len(arr))
	for _, item := range arr {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case primitive.ObjectID:
			out = append(out, v.Hex())
		}
	}
	return out
}

func docAttachment(v interface{}) *models.Attachment {
	d := asDoc(v)
	if d == nil {
		return nil
	}
	att := models.Attachment{URL: docString(d, "url"), ExternalID: docString(d, "publicId")}
	if att.URL == "" && att.ExternalID == "" {
		return nil
	}
	return &att
}

func docAttachments(doc map[string]interface{}, key string) []models.Attachment {
	arr := asArray(doc[key])
	out := make([]models.Attachment, 0, len(arr))
	for _, item := range arr {
		if att := docAttachment(item); att != nil {
			out = append(out, *att)
		}
	}
	return out
}

func docSections(doc map[string]interface{}, key string) []models.Section {
	arr := asArray(doc[key])
	out := make([]models.Section, 0, len(arr))
	for _, item := range arr {
		d := asDoc(item)
		if d == nil {
			continue
		}
		out = append(out, models.Section{
			Heading:   docString(d, "heading"),
			Paragraph: docString(d, "paragraph"),
		})
	}
	return out
}

func baseOf(doc map[string]interface{}) models.Base {
	return models.Base{
		ID:        docID(doc),
		CreatedAt: docTime(doc, "createdAt"),
		UpdatedAt: docTime(doc, "updatedAt"),
	}
}

func statusOf(doc map[string]interface{}) models.Status {
	if s := docString(doc, "status"); s != "" {
		return models.Status(s)
	}
	return models.StatusPending
}

func convertBlog(doc map[string]interface{}) models.BlogModel {
	return models.BlogModel{
		Base:            baseOf(doc),
		Title:           docString(doc, "title"),
		Slug:            docString(doc, "slug"),
		Content:         docString(doc, "content"),
		Images:          docAttachments(doc, "images"),
		Sections:        docSections(doc, "sections"),
		Tags:            docStrings(doc, "tags"),
		Category:        docString(doc, "category"),
		Destination:     docString(doc, "destination"),
		ReadTime:        docString(doc, "readTime"),
		MetaTitle:       docString(doc, "metaTitle"),
		MetaDescription: docString(doc, "metaDescription"),
		Keywords:        docStrings(doc, "keywords"),
		Company:         docString(doc, "company"),
		Status:          statusOf(doc),
		Views:           docInt(doc, "views"),
		LikedBy:         docStrings(doc, "likes"),
		CreatedByID:     docRef(doc, "createdBy"),
	}
}

func convertStory(doc map[string]interface{}) models.StoryModel {
	return models.StoryModel{
		Base:        baseOf(doc),
		Title:       docString(doc, "title"),
		Content:     docString(doc, "content"),
		Tags:        docStrings(doc, "tags"),
		Category:    docString(doc, "category"),
		Destination: docString(doc, "destination"),
		Images:      docAttachments(doc, "images"),
		Sections:    docSections(doc, "sections"),
		Status:      statusOf(doc),
		CreatedByID: docRef(doc, "createdBy"),
	}
}

func convertReel(doc map[string]interface{}) models.ReelModel {
	r := models.ReelModel{
		Base:        baseOf(doc),
		Caption:     docString(doc, "caption"),
		Status:      statusOf(doc),
		LikedBy:     docStrings(doc, "likes"),
		CreatedByID: docRef(doc, "createdBy"),
	}
	if att := docAttachment(doc["video"]); att != nil {
		r.VideoURL = att.URL
		r.ExternalID = att.ExternalID
	} else {
		r.VideoURL = docString(doc, "videoUrl")
		r.ExternalID = docString(doc, "publicId")
	}
	return r
}

func convertReview(doc map[string]interface{}) models.ReviewModel {
	return models.ReviewModel{
		Base:        baseOf(doc),
		UserID:      docString(doc, "user"),
		Destination: docString(doc, "destination"),
		Rating:      docInt(doc, "rating"),
		ReviewText:  docString(doc, "reviewText"),
	}
}

func convertEnquiry(doc map[string]interface{}) models.EnquiryModel {
	return models.EnquiryModel{
		Base:               baseOf(doc),
		Name:               docString(doc, "name"),
		Email:              docString(doc, "email"),
		Phone:              docString(doc, "phone"),
		TravelDates:        docString(doc, "travelDates"),
		NumberOfTravellers: docInt(doc, "numberOfTravellers"),
		SpecialRequests:    docString(doc, "specialRequests"),
		Status:             statusOf(doc),
	}
}

func convertContact(doc map[string]interface{}) models.ContactModel {
	return models.ContactModel{
		Base:    baseOf(doc),
		Name:    docString(doc, "name"),
		Email:   docString(doc, "email"),
		Phone:   docString(doc, "phone"),
		Subject: docString(doc, "subject"),
		Message: docString(doc, "message"),
		Status:  statusOf(doc),
	}
}

func convertUser(doc map[string]interface{}) models.UserModel {
	role := docString(doc, "role")
	if !models.ValidRole(role) {
		role = models.RoleCustomer
	}
	return models.UserModel{
		Base:         baseOf(doc),
		Name:         docString(doc, "name"),
		Email:        docString(doc, "email"),
		Phone:        docString(doc, "phone"),
		Password:     docString(doc, "password"),
		Role:         role,
		ProfileImage: docAttachment(doc["profileImage"]),
		OTP:          docString(doc, "otp"),
		OTPExpiresAt: docTimePtr(doc, "otpExpiresIn"),
		IsVerified:   docBool(doc, "isVerified"),
	}
}

func convertMedia(doc map[string]interface{}) models.MediaModel {
	kind := docString(doc, "type")
	if kind == "" {
		kind = models.MediaKindImage
	}
	folder := docString(doc, "folder")
	if folder == "" {
		folder = "uploads"
	}
	return models.MediaModel{
		Base:       baseOf(doc),
		URL:        docString(doc, "url"),
		ExternalID: docString(doc, "publicId"),
		Kind:       kind,
		Folder:     folder,
	}
}
