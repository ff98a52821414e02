package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

// ListTestimonials fetches published reviews, newest first.
func (c *Client) ListTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	var testimonials []*model.Testimonial
	if err := c.doJSON(ctx, http.MethodGet, "/testimonial", nil, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

// CreateTestimonial publishes a review with an optional photo. Admin only.
func (c *Client) CreateTestimonial(ctx context.Context, req *model.CreateTestimonialRequest, image *FileUpload) (*model.Testimonial, error) {
	var files []FileUpload
	if image != nil {
		files = append(files, *image)
	}

	body, contentType, err := encodeMultipart(req, "file", files)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/testimonial", body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)

	var testimonial model.Testimonial
	if err := c.do(httpReq, &testimonial); err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// DeleteTestimonial removes a review. Admin only.
func (c *Client) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/testimonial/"+id.String(), nil, nil)
}
