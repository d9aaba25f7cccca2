// Package pages holds the page controllers: the load, validate, submit and
// reconcile logic behind every screen, independent of how it is rendered.
//
// Controllers are safe for concurrent use. Network calls run on the caller's
// goroutine and are bound to the controller's lifetime, so closing a page
// aborts its requests and late results are dropped.
package pages

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/session"
)

// ErrClosed is returned by operations that finished after their page was
// closed. Their results are discarded.
var ErrClosed = errors.New("page closed")

// Fallback messages used when the backend does not explain a failure.
const (
	MsgLoadSummary       = "Could not load the monthly summary. Try again later."
	MsgLoadCategories    = "Could not load categories."
	MsgLoadTransactions  = "Could not load your movements."
	MsgLoadProfile       = "We could not load your information. Try again."
	MsgRegister          = "Could not create the account."
	MsgSaveCategory      = "Could not save the category."
	MsgToggleCategory    = "Could not change the category status."
	MsgSaveTransaction   = "Could not save the movement."
	MsgDeleteTransaction = "Could not delete the movement."
	MsgSaveProfile       = "Could not update your details. Try again."
	MsgChangePassword    = "Could not update the password. Check your current password."
)

// UserAPI is the user resource.
type UserAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, req api.UpdateUserRequest) (*model.User, error)
	ChangePassword(ctx context.Context, id int64, req api.ChangePasswordRequest) error
}

// CategoryAPI is the category resource.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, req api.CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, req api.UpdateCategoryRequest) (*model.Category, error)
}

// TransactionAPI is the transaction resource.
type TransactionAPI interface {
	ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, req api.CreateTransactionRequest) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, req api.UpdateTransactionRequest) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// SummaryAPI is the monthly summary resource.
type SummaryAPI interface {
	MonthlySummary(ctx context.Context, userID int64, year int, month time.Month) (*model.Summary, error)
}

// API is every resource a controller may call. *api.Client implements it.
type API interface {
	UserAPI
	CategoryAPI
	TransactionAPI
	SummaryAPI
}

var _ API = (*api.Client)(nil)

// Deps are the collaborators shared by all controllers.
type Deps struct {
	API     API
	Session session.Provider
	Now     func() time.Time
	Logger  *slog.Logger
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Phase is the load state of a page.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Status is the load state of a page plus the message shown with a failed
// load.
type Status struct {
	Message string
	Phase   Phase
}

// Lifetime scopes requests to a page. Close cancels everything bound to it.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLifetime starts a lifetime.
func NewLifetime() *Lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return &Lifetime{ctx: ctx, cancel: cancel}
}

// Bind derives a context from ctx that is also canceled when the lifetime
// ends. Call the returned function when the request is done.
func (l *Lifetime) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Close ends the lifetime.
func (l *Lifetime) Close() {
	l.cancel()
}

// Closed reports whether Close was called.
func (l *Lifetime) Closed() bool {
	return l.ctx.Err() != nil
}

// page is embedded by every controller. mu guards the embedding
// controller's fields as well as these.
type page struct {
	deps    Deps
	life    *Lifetime
	status  Status
	formErr string
	notice  string
	mu      sync.Mutex
}

func (p *page) init(deps Deps) {
	p.deps = deps
	p.life = NewLifetime()
}

// Close cancels in-flight requests. The controller must not be reused.
func (p *page) Close() {
	p.life.Close()
}

// Status returns the load state.
func (p *page) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// FormError returns the inline message of the last failed submission.
func (p *page) FormError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.formErr
}

// Notice returns the confirmation of the last successful submission.
func (p *page) Notice() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notice
}

// DismissError clears the inline form error, and a failed load goes back to
// idle.
func (p *page) DismissError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.formErr = ""
	if p.status.Phase == PhaseFailed {
		p.status = Status{Phase: PhaseIdle}
	}
}

func (p *page) beginLoad() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = Status{Phase: PhaseLoading}
}

// beginSubmit clears messages left by an earlier submission.
func (p *page) beginSubmit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.formErr = ""
	p.notice = ""
}

// failLoad records a failed load. Callers hold mu.
func (p *page) failLoad(err error, fallback string) {
	p.status = Status{Phase: PhaseFailed, Message: common.Describe(err, fallback)}
	p.deps.logger().Debug("Page load failed", "error", err)
}

// rejectLocked records a failed submission. Callers hold mu.
func (p *page) rejectLocked(err error, fallback string) error {
	p.formErr = common.Describe(err, fallback)
	return err
}

// reject records a failed submission.
func (p *page) reject(err error, fallback string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rejectLocked(err, fallback)
}

// sessionUser returns the logged in user, or ErrNotAuthenticated.
func (p *page) sessionUser(ctx context.Context) (*model.User, error) {
	st, err := session.Load(ctx, p.deps.Session)
	if err != nil {
		return nil, err
	}
	if st.Discarded != nil {
		p.deps.logger().Warn("Discarding unreadable session", "error", st.Discarded)
	}
	if !st.Authenticated() {
		return nil, common.ErrNotAuthenticated
	}
	return st.User, nil
}
