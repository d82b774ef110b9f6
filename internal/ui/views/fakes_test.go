package views

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	"github.com/Apurer/go-gin-backoffice/internal/ui/helpers"
)

var errBackend = errors.New("backend unavailable")

type fakeProducts struct {
	mu       sync.Mutex
	items    map[int64]backoffice.Product
	nextID   int64
	failList bool
	failGet  bool
	failSave bool
	failDel  bool
	creates  []backoffice.ProductInput
	updates  map[int64]backoffice.ProductInput
	deletes  []int64
}

func newFakeProducts(products ...backoffice.Product) *fakeProducts {
	f := &fakeProducts{items: map[int64]backoffice.Product{}, updates: map[int64]backoffice.ProductInput{}}
	for _, p := range products {
		f.items[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeProducts) GetAll(context.Context) ([]backoffice.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errBackend
	}
	out := make([]backoffice.Product, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*backoffice.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errBackend
	}
	p, ok := f.items[id]
	if !ok {
		return nil, &backoffice.APIError{Status: 404, Message: "Produit introuvable"}
	}
	return &p, nil
}

func (f *fakeProducts) Create(_ context.Context, in backoffice.ProductInput) (*backoffice.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return nil, errBackend
	}
	f.nextID++
	f.items[f.nextID] = backoffice.Product{ID: f.nextID, Name: in.Name, Price: in.Price}
	f.creates = append(f.creates, in)
	return &backoffice.Message{Message: "Produit ajouté", ID: f.nextID}, nil
}

func (f *fakeProducts) Update(_ context.Context, id int64, in backoffice.ProductInput) (*backoffice.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return nil, errBackend
	}
	f.items[id] = backoffice.Product{ID: id, Name: in.Name, Price: in.Price}
	f.updates[id] = in
	return &backoffice.Message{Message: "Produit mis à jour"}, nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) (*backoffice.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel {
		return nil, errBackend
	}
	delete(f.items, id)
	f.deletes = append(f.deletes, id)
	return &backoffice.Message{Message: "Produit supprimé"}, nil
}

type fakeOrders struct {
	mu       sync.Mutex
	items    map[int64]backoffice.Order
	nextID   int64
	failList bool
	failGet  bool
	failSave bool
	creates  []backoffice.OrderInput
	updates  map[int64]backoffice.OrderInput
	deletes  []int64
}

func newFakeOrders(orders ...backoffice.Order) *fakeOrders {
	f := &fakeOrders{items: map[int64]backoffice.Order{}, updates: map[int64]backoffice.OrderInput{}}
	for _, o := range orders {
		f.items[o.ID] = o
		if o.ID > f.nextID {
			f.nextID = o.ID
		}
	}
	return f
}

func (f *fakeOrders) GetAll(context.Context) ([]backoffice.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errBackend
	}
	out := make([]backoffice.Order, 0, len(f.items))
	for _, o := range f.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrders) GetByID(_ context.Context, id int64) (*backoffice.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errBackend
	}
	o, ok := f.items[id]
	if !ok {
		return nil, &backoffice.APIError{Status: 404, Message: "Commande introuvable"}
	}
	return &o, nil
}

func (f *fakeOrders) Create(_ context.Context, in backoffice.OrderInput) (*backoffice.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return nil, errBackend
	}
	f.nextID++
	f.items[f.nextID] = backoffice.Order{ID: f.nextID, ProductID: in.ProductID, Quantity: in.Quantity}
	f.creates = append(f.creates, in)
	return &backoffice.Message{Message: "Commande ajoutée", ID: f.nextID}, nil
}

func (f *fakeOrders) Update(_ context.Context, id int64, in backoffice.OrderInput) (*backoffice.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return nil, errBackend
	}
	f.items[id] = backoffice.Order{ID: id, ProductID: in.ProductID, Quantity: in.Quantity}
	f.updates[id] = in
	return &backoffice.Message{Message: "Commande mise à jour"}, nil
}

func (f *fakeOrders) Delete(_ context.Context, id int64) (*backoffice.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	f.deletes = append(f.deletes, id)
	return &backoffice.Message{Message: "Commande supprimée"}, nil
}

// settle runs cmd and feeds every resulting message back into the model
// until no work is left. Notifications are collected instead of delivered.
func settle(t *testing.T, model tea.Model, cmd tea.Cmd) []helpers.NotifyMsg {
	t.Helper()
	var notes []helpers.NotifyMsg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case helpers.NotifyMsg:
			notes = append(notes, msg)
		case spinner.TickMsg:
		default:
			var follow tea.Cmd
			_, follow = model.Update(msg)
			queue = append(queue, follow)
		}
	}
	return notes
}

func press(t *testing.T, model tea.Model, keys ...string) []helpers.NotifyMsg {
	t.Helper()
	var notes []helpers.NotifyMsg
	for _, k := range keys {
		_, cmd := model.Update(keyMsg(k))
		notes = append(notes, settle(t, model, cmd)...)
	}
	return notes
}

func typeText(t *testing.T, model tea.Model, text string) {
	t.Helper()
	for _, r := range text {
		_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		settle(t, model, cmd)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
