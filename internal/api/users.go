package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmatrios/ahorrape-front/internal/model"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest is the body of PUT /users/{id}/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user profile.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the name and email of a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, userPath(id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword sets a new password. The response body is empty.
func (c *Client) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, userPath(id)+"/password", nil, req, nil)
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}
