// Package model defines the records exchanged with the AhorraPE backend.
package model

import (
	"fmt"
	"strings"
)

// Kind is the direction of a transaction.
type Kind string

const (
	// KindIncome is money coming in.
	KindIncome Kind = "INCOME"
	// KindExpense is money going out.
	KindExpense Kind = "EXPENSE"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind converts case-insensitive user input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME", "IN":
		return KindIncome, nil
	case "EXPENSE", "OUT":
		return KindExpense, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// CategoryKind restricts which transaction kinds may reference a category.
type CategoryKind string

const (
	// CategoryIncome accepts income transactions only.
	CategoryIncome CategoryKind = "INCOME"
	// CategoryExpense accepts expense transactions only.
	CategoryExpense CategoryKind = "EXPENSE"
	// CategoryBoth accepts either kind.
	CategoryBoth CategoryKind = "BOTH"
)

// Valid reports whether k is a known category kind.
func (k CategoryKind) Valid() bool {
	return k == CategoryIncome || k == CategoryExpense || k == CategoryBoth
}

// Accepts reports whether a transaction of kind t may use a category of kind k.
func (k CategoryKind) Accepts(t Kind) bool {
	switch k {
	case CategoryBoth:
		return t.Valid()
	case CategoryIncome:
		return t == KindIncome
	case CategoryExpense:
		return t == KindExpense
	}
	return false
}

// ParseCategoryKind converts case-insensitive user input into a CategoryKind.
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME":
		return CategoryIncome, nil
	case "EXPENSE":
		return CategoryExpense, nil
	case "BOTH":
		return CategoryBoth, nil
	}
	return "", fmt.Errorf("unknown category kind %q", s)
}
