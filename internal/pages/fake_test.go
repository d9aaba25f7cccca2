package pages

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

// fakeAPI records calls and serves canned data. Set an err* field to make
// the matching call fail.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	users        map[int64]model.User
	categories   []model.Category
	transactions []model.Transaction
	summary      *model.Summary
	loginResp    *api.LoginResponse

	created          []api.CreateTransactionRequest
	updatedTxns      map[int64]api.UpdateTransactionRequest
	updatedCats      map[int64][]api.UpdateCategoryRequest
	deleted          []int64
	createdCats      []api.CreateCategoryRequest
	updatedUsers     []api.UpdateUserRequest
	passwordRequests []api.ChangePasswordRequest

	errLogin          error
	errRegister       error
	errGetUser        error
	errUpdateUser     error
	errPassword       error
	errListCategories error
	errCreateCategory error
	errUpdateCategory error
	errListTxns       error
	errCreateTxn      error
	errUpdateTxn      error
	errDeleteTxn      error
	errSummary        error

	// block, when set, makes UpdateCategory and MonthlySummary wait for
	// it to close or for the request context to end.
	block chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:       make(map[int64]model.User),
		updatedTxns: make(map[int64]api.UpdateTransactionRequest),
		updatedCats: make(map[int64][]api.UpdateCategoryRequest),
	}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) Login(_ context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	f.record("Login")
	if f.errLogin != nil {
		return nil, f.errLogin
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Register(_ context.Context, req api.RegisterRequest) (*model.User, error) {
	f.record("Register")
	if f.errRegister != nil {
		return nil, f.errRegister
	}
	return &model.User{ID: 99, Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAPI) GetUser(_ context.Context, id int64) (*model.User, error) {
	f.record("GetUser")
	if f.errGetUser != nil {
		return nil, f.errGetUser
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	return &u, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int64, req api.UpdateUserRequest) (*model.User, error) {
	f.record("UpdateUser")
	if f.errUpdateUser != nil {
		return nil, f.errUpdateUser
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedUsers = append(f.updatedUsers, req)
	return &model.User{ID: id, Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, _ int64, req api.ChangePasswordRequest) error {
	f.record("ChangePassword")
	f.mu.Lock()
	f.passwordRequests = append(f.passwordRequests, req)
	f.mu.Unlock()
	return f.errPassword
}

func (f *fakeAPI) ListCategories(context.Context) ([]model.Category, error) {
	f.record("ListCategories")
	if f.errListCategories != nil {
		return nil, f.errListCategories
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Category(nil), f.categories...), nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, req api.CreateCategoryRequest) (*model.Category, error) {
	f.record("CreateCategory")
	if f.errCreateCategory != nil {
		return nil, f.errCreateCategory
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdCats = append(f.createdCats, req)
	cat := model.Category{ID: int64(len(f.categories) + 1), Name: req.Name, Description: req.Description, Kind: req.Kind, Active: true}
	f.categories = append(f.categories, cat)
	return &cat, nil
}

func (f *fakeAPI) UpdateCategory(ctx context.Context, id int64, req api.UpdateCategoryRequest) (*model.Category, error) {
	f.record("UpdateCategory")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.errUpdateCategory != nil {
		return nil, f.errUpdateCategory
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedCats[id] = append(f.updatedCats[id], req)
	for i := range f.categories {
		if f.categories[i].ID != id {
			continue
		}
		if req.Name != nil {
			f.categories[i].Name = *req.Name
		}
		if req.Active != nil {
			f.categories[i].Active = *req.Active
		}
		cat := f.categories[i]
		return &cat, nil
	}
	return &model.Category{ID: id}, nil
}

func (f *fakeAPI) ListTransactions(context.Context, int64) ([]model.Transaction, error) {
	f.record("ListTransactions")
	if f.errListTxns != nil {
		return nil, f.errListTxns
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Transaction(nil), f.transactions...), nil
}

func (f *fakeAPI) CreateTransaction(_ context.Context, req api.CreateTransactionRequest) (*model.Transaction, error) {
	f.record("CreateTransaction")
	if f.errCreateTxn != nil {
		return nil, f.errCreateTxn
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	txn := model.Transaction{
		ID:          int64(100 + len(f.created)),
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}
	f.transactions = append(f.transactions, txn)
	return &txn, nil
}

func (f *fakeAPI) UpdateTransaction(_ context.Context, id int64, req api.UpdateTransactionRequest) (*model.Transaction, error) {
	f.record("UpdateTransaction")
	if f.errUpdateTxn != nil {
		return nil, f.errUpdateTxn
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedTxns[id] = req
	return &model.Transaction{ID: id}, nil
}

func (f *fakeAPI) DeleteTransaction(_ context.Context, id int64) error {
	f.record("DeleteTransaction")
	if f.errDeleteTxn != nil {
		return f.errDeleteTxn
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.transactions[:0]
	for _, t := range f.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.transactions = kept
	return nil
}

func (f *fakeAPI) MonthlySummary(ctx context.Context, _ int64, _ int, _ time.Month) (*model.Summary, error) {
	f.record("MonthlySummary")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.errSummary != nil {
		return nil, f.errSummary
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.summary == nil {
		return &model.Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero, Balance: decimal.Zero}, nil
	}
	s := *f.summary
	return &s, nil
}

var testUser = model.User{ID: 7, Name: "Ana", Email: "ana@example.com", Plan: model.PlanFree, Role: model.RoleUser}

// loggedIn returns deps with an authenticated in-memory session.
func loggedIn(t *testing.T, fake *fakeAPI, user model.User) (Deps, *session.Store) {
	t.Helper()
	store := session.New(session.NewMemory())
	require.NoError(t, store.Save(context.Background(), "opaque-token", user))
	return Deps{API: fake, Session: store, Now: func() time.Time { return testNow }}, store
}

func anonymous(fake *fakeAPI) (Deps, *session.Store) {
	store := session.New(session.NewMemory())
	return Deps{API: fake, Session: store, Now: func() time.Time { return testNow }}, store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Food", Kind: model.CategoryExpense, Active: true},
		{ID: 2, Name: "Salary", Kind: model.CategoryIncome, Active: true},
		{ID: 3, Name: "Gifts", Kind: model.CategoryBoth, Active: true},
		{ID: 4, Name: "Old", Kind: model.CategoryExpense, Active: false},
	}
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: 1, UserID: 7, CategoryID: 1, CategoryName: "Food", Kind: model.KindExpense, Amount: dec("50"), Date: "2025-01-04", Description: "lunch"},
		{ID: 2, UserID: 7, CategoryID: 1, CategoryName: "Food", Kind: model.KindExpense, Amount: dec("30"), Date: "2025-01-10"},
		{ID: 3, UserID: 7, CategoryID: 2, CategoryName: "Salary", Kind: model.KindIncome, Amount: dec("1000"), Date: "2025-01-01", Description: "January"},
		{ID: 4, UserID: 7, CategoryID: 3, CategoryName: "Gifts", Kind: model.KindIncome, Amount: dec("20"), Date: "2024-12-24"},
	}
}
