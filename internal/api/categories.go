package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmatrios/ahorrape-front/internal/model"
)

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Description *string            `json:"description,omitempty"`
	Name        string             `json:"name"`
	Kind        model.CategoryKind `json:"kind"`
}

// UpdateCategoryRequest is a partial update; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Kind        *model.CategoryKind `json:"kind,omitempty"`
	Active      *bool               `json:"active,omitempty"`
}

// ListCategories returns every category, active or not.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies a partial update and returns the stored category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, req UpdateCategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
