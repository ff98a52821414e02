package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// FileUpload is a named file attached to a multipart submission.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// encodeMultipart builds the body the write endpoints expect: a "data"
// field holding the JSON payload plus zero or more file parts under
// fileField.
func encodeMultipart(data interface{}, fileField string, files []FileUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode data field: %w", err)
	}
	if err := w.WriteField("data", string(payload)); err != nil {
		return nil, "", fmt.Errorf("failed to write data field: %w", err)
	}

	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, "", fmt.Errorf("failed to write file %q: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
