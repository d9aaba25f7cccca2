package model

// Category groups transactions. Categories are deactivated, never deleted.
type Category struct {
	Description *string      `json:"description"`
	Name        string       `json:"name"`
	Kind        CategoryKind `json:"kind"`
	ID          int64        `json:"id"`
	Active      bool         `json:"active"`
}

// Accepts reports whether a transaction of kind t may reference c.
func (c Category) Accepts(t Kind) bool {
	return c.Kind.Accepts(t)
}

// DescriptionText returns the description or an empty string.
func (c Category) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}
