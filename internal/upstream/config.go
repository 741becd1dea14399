package upstream

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/maxuni/miniapp-backend/internal/model"
)

// UniversityLogin exchanges administrator credentials for a bearer token.
func (c *Client) UniversityLogin(ctx context.Context, req model.UniversityLoginRequest) (string, error) {
	var resp model.UniversityLoginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/universities/login", body: req}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &APIError{Status: http.StatusOK, Message: MsgBadResponse}
	}
	return resp.AccessToken, nil
}

// UniversityConfig fetches the stored config. A missing config yields an empty one.
func (c *Client) UniversityConfig(ctx context.Context, universityID int64) (*model.UniversityConfig, error) {
	var cfg model.UniversityConfig
	err := c.do(ctx, request{method: http.MethodGet, path: "/config/university/" + strconv.FormatInt(universityID, 10)}, &cfg)
	if errors.Is(err, ErrNotFound) {
		return &model.UniversityConfig{UniversityID: universityID, Endpoints: map[string]string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if cfg.Endpoints == nil {
		cfg.Endpoints = map[string]string{}
	}
	return &cfg, nil
}

// PutUniversityConfig replaces the whole config object.
func (c *Client) PutUniversityConfig(ctx context.Context, token string, cfg *model.UniversityConfig) (*model.UniversityConfig, error) {
	var saved model.UniversityConfig
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/config/university",
		body:   cfg,
		token:  token,
	}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// EndpointStatus reports which features the upstream considers enabled.
func (c *Client) EndpointStatus(ctx context.Context, universityID int64) (model.EndpointStatus, error) {
	status := model.EndpointStatus{}
	path := "/config/university/" + strconv.FormatInt(universityID, 10) + "/endpoints/status"
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &status); err != nil {
		return nil, err
	}
	return status, nil
}
