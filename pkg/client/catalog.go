package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

// ListServices fetches the service catalog in display order.
func (c *Client) ListServices(ctx context.Context) ([]*model.Service, error) {
	var services []*model.Service
	if err := c.doJSON(ctx, http.MethodGet, "/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService fetches one service with its full questionnaire.
func (c *Client) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var service model.Service
	if err := c.doJSON(ctx, http.MethodGet, "/services/"+id.String(), nil, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// CreateService creates a service with its questionnaire. An optional
// image file becomes the service thumbnail. Admin only.
func (c *Client) CreateService(ctx context.Context, req *model.CreateServiceRequest, image *FileUpload) (*model.Service, error) {
	var files []FileUpload
	if image != nil {
		files = append(files, *image)
	}

	body, contentType, err := encodeMultipart(req, "file", files)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/services", body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)

	var service model.Service
	if err := c.do(httpReq, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// DeleteService removes a service and its questionnaire. Admin only.
func (c *Client) DeleteService(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/services/"+id.String(), nil, nil)
}
