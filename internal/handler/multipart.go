package handler

import (
	"encoding/json"
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// dataField is the multipart field carrying the JSON payload of create
// requests; files ride alongside it as separate parts.
const dataField = "data"

var validate = validator.New()

// BindMultipartData decodes and validates the JSON carried in the
// "data" field of a multipart form.
func BindMultipartData(c *gin.Context, dst interface{}) error {
	raw := c.PostForm(dataField)
	if raw == "" {
		return fmt.Errorf("missing %q form field", dataField)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("invalid %q payload: %w", dataField, err)
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// FormFiles returns the uploaded files under the given field name, or
// nil when the form has none.
func FormFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
