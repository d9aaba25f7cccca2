package validate

import (
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

// LoginForm holds the login fields.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks that both fields are present.
func (f LoginForm) Validate() error {
	if blank(f.Email, f.Password) {
		return fail("", MsgLoginRequired)
	}
	return nil
}

// RegisterForm holds the registration fields.
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// Validate checks presence, email shape, password length and confirmation,
// in that order.
func (f RegisterForm) Validate() error {
	if blank(f.Name, f.Email, f.Password, f.PasswordConfirm) {
		return fail("", MsgRequiredFields)
	}
	if !Email(strings.TrimSpace(f.Email)) {
		return fail("email", MsgInvalidEmail)
	}
	if len(f.Password) < MinPasswordLength {
		return fail("password", MsgPasswordTooShort)
	}
	if f.Password != f.PasswordConfirm {
		return fail("passwordConfirm", MsgPasswordMismatch)
	}
	return nil
}

// ProfileForm holds the editable profile fields.
type ProfileForm struct {
	Name  string
	Email string
}

// Validate checks that name and email are present and the email is shaped.
func (f ProfileForm) Validate() error {
	if blank(f.Name, f.Email) {
		return fail("", MsgRequiredFields)
	}
	if !Email(strings.TrimSpace(f.Email)) {
		return fail("email", MsgInvalidEmail)
	}
	return nil
}

// PasswordForm holds a password change.
type PasswordForm struct {
	Current string
	New     string
	Confirm string
}

// Validate checks presence, confirmation and minimum length.
func (f PasswordForm) Validate() error {
	if blank(f.Current, f.New, f.Confirm) {
		return fail("", MsgRequiredFields)
	}
	if f.New != f.Confirm {
		return fail("confirm", MsgPasswordMismatch)
	}
	if len(f.New) < MinPasswordLength {
		return fail("new", MsgPasswordTooShort)
	}
	return nil
}

// CategoryForm holds a category being created or edited.
type CategoryForm struct {
	Name        string
	Description string
	Kind        model.CategoryKind
}

// Validate checks that the name is present and the kind is known.
func (f CategoryForm) Validate() error {
	if blank(f.Name) {
		return fail("name", MsgNameRequired)
	}
	if !f.Kind.Valid() {
		return fail("kind", MsgKindRequired)
	}
	return nil
}

// TransactionForm holds a transaction being created or edited. Amount and
// Date are raw input.
type TransactionForm struct {
	Kind        model.Kind
	Amount      string
	Date        string
	Description string
	CategoryID  int64
}

// TransactionInput is a validated TransactionForm.
type TransactionInput struct {
	Amount      decimal.Decimal
	Date        model.Date
	Description string
	Kind        model.Kind
	CategoryID  int64
}

// Validate checks the form against the categories the user can choose from.
// The selected category must exist and accept the form's kind.
func (f TransactionForm) Validate(categories []model.Category) (TransactionInput, error) {
	if len(categories) == 0 {
		return TransactionInput{}, fail("category", MsgNoCategories)
	}
	if !f.Kind.Valid() {
		return TransactionInput{}, fail("kind", MsgKindRequired)
	}
	if f.CategoryID == 0 {
		return TransactionInput{}, fail("category", MsgCategoryRequired)
	}

	var selected *model.Category
	for i := range categories {
		if categories[i].ID == f.CategoryID {
			selected = &categories[i]
			break
		}
	}
	if selected == nil {
		return TransactionInput{}, fail("category", MsgCategoryRequired)
	}
	if !selected.Accepts(f.Kind) {
		return TransactionInput{}, fail("category", MsgCategoryMismatch)
	}

	amount, err := Amount(f.Amount)
	if err != nil {
		return TransactionInput{}, err
	}

	date := model.Date(strings.TrimSpace(f.Date))
	if date == "" {
		return TransactionInput{}, fail("date", MsgDateRequired)
	}
	if _, err := date.Time(); err != nil {
		return TransactionInput{}, fail("date", MsgInvalidDate)
	}

	return TransactionInput{
		Kind:        f.Kind,
		CategoryID:  f.CategoryID,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(f.Description),
	}, nil
}
