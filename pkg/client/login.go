package client

import (
	"context"
	"net/http"

	"github.com/niramoy/clinic-api/internal/model"
)

// Login exchanges credentials for an access token. The caller decides
// where the token lives; pair with session.Store for the dashboard
// behavior of keeping it across restarts.
func (c *Client) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	req := &model.LoginRequest{Email: email, Password: password}
	var token model.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}
