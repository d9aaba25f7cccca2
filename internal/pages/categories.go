package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/optimistic"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

// ErrToggleInFlight is returned when a toggle is requested for a category
// whose previous toggle has not finished.
var ErrToggleInFlight = errors.New("toggle already in progress")

// Confirmations shown after a category change.
const (
	MsgCategoryCreated = "Category created."
	MsgCategoryUpdated = "Category updated."
)

// Categories backs the category management page.
type Categories struct {
	page
	categories []model.Category
	toggling   map[int64]bool
}

// NewCategories creates a Categories controller.
func NewCategories(deps Deps) *Categories {
	c := &Categories{toggling: make(map[int64]bool)}
	c.init(deps)
	return c
}

// Load fetches the category list.
func (c *Categories) Load(ctx context.Context) error {
	c.beginLoad()
	ctx, done := c.life.Bind(ctx)
	defer done()

	categories, err := c.deps.API.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		c.failLoad(err, MsgLoadCategories)
		return err
	}
	c.categories = categories
	c.status = Status{Phase: PhaseReady}
	return nil
}

// Categories returns a copy of the list.
func (c *Categories) Categories() []model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Category(nil), c.categories...)
}

// Counts returns the header counters.
func (c *Categories) Counts() aggregate.CategoryCounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return aggregate.CountCategories(c.categories)
}

// Toggling reports whether a toggle for id is in flight.
func (c *Categories) Toggling(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggling[id]
}

// Create validates and creates a category, then reloads the list.
func (c *Categories) Create(ctx context.Context, form validate.CategoryForm) error {
	c.beginSubmit()
	if err := form.Validate(); err != nil {
		return c.reject(err, "")
	}

	bound, done := c.life.Bind(ctx)
	_, err := c.deps.API.CreateCategory(bound, api.CreateCategoryRequest{
		Name:        strings.TrimSpace(form.Name),
		Description: optionalText(form.Description),
		Kind:        form.Kind,
	})
	done()
	if c.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return c.reject(err, MsgSaveCategory)
	}

	c.mu.Lock()
	c.notice = MsgCategoryCreated
	c.mu.Unlock()
	return c.Load(ctx)
}

// Update validates and saves name, description and kind, then reloads the
// list.
func (c *Categories) Update(ctx context.Context, id int64, form validate.CategoryForm) error {
	c.beginSubmit()
	if err := form.Validate(); err != nil {
		return c.reject(err, "")
	}

	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)
	kind := form.Kind

	bound, done := c.life.Bind(ctx)
	_, err := c.deps.API.UpdateCategory(bound, id, api.UpdateCategoryRequest{
		Name:        &name,
		Description: &description,
		Kind:        &kind,
	})
	done()
	if c.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return c.reject(err, MsgSaveCategory)
	}

	c.mu.Lock()
	c.notice = MsgCategoryUpdated
	c.mu.Unlock()
	return c.Load(ctx)
}

// Toggle flips the active flag of a category. The list shows the new state
// immediately and reverts if the backend rejects the change. A second
// toggle of the same category while one is in flight returns
// ErrToggleInFlight and changes nothing.
func (c *Categories) Toggle(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.formErr = ""
	if c.toggling[id] {
		c.mu.Unlock()
		return ErrToggleInFlight
	}
	current, ok := c.find(id)
	if !ok {
		c.mu.Unlock()
		return c.reject(common.ErrNotFound, MsgToggleCategory)
	}
	c.toggling[id] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.toggling, id)
		c.mu.Unlock()
	}()

	want := !current.Active
	state := optimistic.Funcs[*bool]{
		SnapshotFunc: func() *bool { return c.activeOf(id) },
		RestoreFunc: func(prev *bool) {
			if prev != nil {
				c.setActive(id, *prev)
			}
		},
	}

	bound, done := c.life.Bind(ctx)
	defer done()

	err := optimistic.Apply[*bool](bound, state, func() { c.setActive(id, want) }, func(ctx context.Context) error {
		_, err := c.deps.API.UpdateCategory(ctx, id, api.UpdateCategoryRequest{Active: &want})
		return err
	})
	if c.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return c.reject(err, MsgToggleCategory)
	}
	return nil
}

// find returns the category with id. Callers hold mu.
func (c *Categories) find(id int64) (model.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

func (c *Categories) activeOf(id int64) *bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cat, ok := c.find(id)
	if !ok {
		return nil
	}
	active := cat.Active
	return &active
}

func (c *Categories) setActive(id int64, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories[i].Active = active
			return
		}
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
