package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ZachKeskinen/hyp3-sdk/api"
)

// UserInfo fetches the caller's account record.
func (c *Client) UserInfo(ctx context.Context) (api.UserResponse, error) {
	var u api.UserResponse
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &u); err != nil {
		return api.UserResponse{}, err
	}
	return u, nil
}

// CheckQuota returns the number of jobs left in the caller's quota.
func (c *Client) CheckQuota(ctx context.Context) (int, error) {
	u, err := c.UserInfo(ctx)
	if err != nil {
		return 0, err
	}
	if u.Quota.Remaining == nil {
		return 0, fmt.Errorf("service did not report a remaining quota")
	}
	return *u.Quota.Remaining, nil
}
