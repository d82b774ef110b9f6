package views

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	"github.com/Apurer/go-gin-backoffice/internal/ui/helpers"
)

// Mode is the state of a resource view.
type Mode int

const (
	ModeList Mode = iota
	ModeFormCreate
	ModeFormEdit
	ModeConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case ModeFormCreate:
		return "form-create"
	case ModeFormEdit:
		return "form-edit"
	case ModeConfirmDelete:
		return "confirm-delete"
	default:
		return "list"
	}
}

// ProductsClient is the products side of the back office API.
type ProductsClient interface {
	GetAll(ctx context.Context) ([]backoffice.Product, error)
	GetByID(ctx context.Context, id int64) (*backoffice.Product, error)
	Create(ctx context.Context, input backoffice.ProductInput) (*backoffice.Message, error)
	Update(ctx context.Context, id int64, input backoffice.ProductInput) (*backoffice.Message, error)
	Delete(ctx context.Context, id int64) (*backoffice.Message, error)
}

// OrdersClient is the orders side of the back office API.
type OrdersClient interface {
	GetAll(ctx context.Context) ([]backoffice.Order, error)
	GetByID(ctx context.Context, id int64) (*backoffice.Order, error)
	Create(ctx context.Context, input backoffice.OrderInput) (*backoffice.Message, error)
	Update(ctx context.Context, id int64, input backoffice.OrderInput) (*backoffice.Message, error)
	Delete(ctx context.Context, id int64) (*backoffice.Message, error)
}

var (
	_ ProductsClient = (*backoffice.ProductsAPI)(nil)
	_ OrdersClient   = (*backoffice.OrdersAPI)(nil)
)

// View is a resource screen hosted by the navigation shell. Activate resets
// the screen and invalidates every request issued before it.
type View interface {
	tea.Model
	Activate() tea.Cmd
	Title() string
	// Capturing reports whether text input currently owns the keyboard.
	Capturing() bool
}

// Option configures a view.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger records request failures on logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// generation tags asynchronous results with the activation or request that
// issued them.
type generation uint64

// action tracks the single form or delete request a view may have in flight.
// Every state change moves the token on, so a reply to an abandoned request
// no longer matches and is dropped.
type action struct {
	token   generation
	pending bool
}

// supersede abandons the request in flight, if any.
func (a *action) supersede(loader *helpers.Loader) {
	a.token++
	if a.pending {
		a.pending = false
		*loader = loader.Stop()
	}
}

// begin supersedes the current request and starts a new one.
func (a *action) begin(loader *helpers.Loader) (generation, tea.Cmd) {
	a.supersede(loader)
	a.pending = true
	var spin tea.Cmd
	*loader, spin = loader.Start()
	return a.token, spin
}

// finish reports whether token is the live request and, if so, settles it.
func (a *action) finish(loader *helpers.Loader, token generation) bool {
	if !a.pending || token != a.token {
		return false
	}
	a.pending = false
	*loader = loader.Stop()
	return true
}

func moveCursor(cursor, delta, size int) int {
	if size == 0 {
		return 0
	}
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	return cursor
}
