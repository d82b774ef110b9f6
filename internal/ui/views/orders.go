package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	"github.com/Apurer/go-gin-backoffice/internal/ui/helpers"
)

const (
	orderProductField = iota
	orderQuantityField
	orderFieldCount
)

const noProductSelected = -1

type ordersLoadedMsg struct {
	gen    generation
	orders []backoffice.Order
	err    error
}

// orderFormLoadedMsg carries what the order form needs. order is only set
// when edit is true.
type orderFormLoadedMsg struct {
	token    generation
	edit     bool
	order    *backoffice.Order
	products []backoffice.Product
	err      error
}

type orderSavedMsg struct {
	token generation
	edit  bool
	err   error
}

type orderDeletedMsg struct {
	token generation
	err   error
}

// OrdersView lists orders and drives their create, edit and delete flows.
// Order forms pick the product from the current catalogue.
type OrdersView struct {
	orders   OrdersClient
	products ProductsClient
	logger   *slog.Logger

	mode   Mode
	gen    generation
	action action

	list    []backoffice.Order
	loaded  bool
	listErr bool
	cursor  int

	editID    int64
	deleteID  int64
	options   []backoffice.Product
	selected  int
	quantity  textinput.Model
	focus     int
	formError string

	loader helpers.Loader
}

func NewOrdersView(orders OrdersClient, products ProductsClient, opts ...Option) *OrdersView {
	o := buildOptions(opts)
	return &OrdersView{
		orders:   orders,
		products: products,
		logger:   o.logger,
		selected: noProductSelected,
		quantity: helpers.NewInput("1", 10),
		loader:   helpers.NewLoader(),
	}
}

func (v *OrdersView) Title() string { return "Orders" }

func (v *OrdersView) Mode() Mode { return v.mode }

func (v *OrdersView) Orders() []backoffice.Order { return v.list }

func (v *OrdersView) EditingID() int64 { return v.editID }

func (v *OrdersView) Loading() bool { return v.loader.Active() }

func (v *OrdersView) Capturing() bool {
	return v.mode == ModeFormCreate || v.mode == ModeFormEdit
}

// SelectedProduct returns the product picked in the form, if any.
func (v *OrdersView) SelectedProduct() (backoffice.Product, bool) {
	if v.selected < 0 || v.selected >= len(v.options) {
		return backoffice.Product{}, false
	}
	return v.options[v.selected], true
}

// ProductOptions lists the products offered by the form.
func (v *OrdersView) ProductOptions() []backoffice.Product { return v.options }

func (v *OrdersView) QuantityValue() string { return v.quantity.Value() }

func (v *OrdersView) Init() tea.Cmd { return v.Activate() }

// Activate shows the list and fetches every order.
func (v *OrdersView) Activate() tea.Cmd {
	v.gen++
	v.mode = ModeList
	v.editID = 0
	v.deleteID = 0
	v.formError = ""
	v.loaded = false
	v.resetForm()
	v.action.supersede(&v.loader)
	v.loader = v.loader.Reset()
	var spin tea.Cmd
	v.loader, spin = v.loader.Start()
	return tea.Batch(spin, v.fetchAll(v.gen))
}

func (v *OrdersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case ordersLoadedMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.loader = v.loader.Stop()
		v.loaded = true
		if msg.err != nil {
			v.listErr = true
			v.list = nil
			v.logger.Error("load orders", slog.String("error", msg.err.Error()))
			return v, nil
		}
		v.listErr = false
		v.list = msg.orders
		v.cursor = moveCursor(v.cursor, 0, len(v.list))
		return v, nil
	case orderFormLoadedMsg:
		if !v.action.finish(&v.loader, msg.token) {
			return v, nil
		}
		return v, v.handleFormLoaded(msg)
	case orderSavedMsg:
		if !v.action.finish(&v.loader, msg.token) {
			return v, nil
		}
		if msg.err != nil {
			action := "creating"
			if msg.edit {
				action = "updating"
			}
			v.logger.Error(action+" order", slog.String("error", msg.err.Error()))
			return v, helpers.Notify("Error "+action+" order", helpers.KindError)
		}
		text := "Order created successfully"
		if msg.edit {
			text = "Order updated successfully"
		}
		return v, tea.Batch(helpers.Notify(text, helpers.KindSuccess), v.Activate())
	case orderDeletedMsg:
		if !v.action.finish(&v.loader, msg.token) {
			return v, nil
		}
		if msg.err != nil {
			v.mode = ModeList
			v.logger.Error("delete order", slog.String("error", msg.err.Error()))
			return v, helpers.Notify("Error deleting order", helpers.KindError)
		}
		return v, tea.Batch(helpers.Notify("Order deleted successfully", helpers.KindSuccess), v.Activate())
	}

	var cmd tea.Cmd
	v.loader, cmd = v.loader.Update(msg)
	return v, cmd
}

func (v *OrdersView) handleFormLoaded(msg orderFormLoadedMsg) tea.Cmd {
	if !msg.edit {
		if msg.err != nil {
			v.logger.Error("load products for order form", slog.String("error", msg.err.Error()))
			return helpers.Notify("Error loading products", helpers.KindError)
		}
		if len(msg.products) == 0 {
			return tea.Batch(
				helpers.Notify("No products available. Please add products first.", helpers.KindError),
				v.Activate(),
			)
		}
		v.openForm(nil, msg.products)
		return nil
	}
	if msg.err != nil {
		v.logger.Error("fetch order or products", slog.String("error", msg.err.Error()))
		return helpers.Notify("Error fetching order details", helpers.KindError)
	}
	v.openForm(msg.order, msg.products)
	return nil
}

func (v *OrdersView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch v.mode {
	case ModeFormCreate, ModeFormEdit:
		return v.handleFormKey(msg)
	case ModeConfirmDelete:
		if v.action.pending {
			return nil
		}
		switch msg.String() {
		case "y", "Y":
			return v.delete()
		case "n", "N", "esc":
			v.action.supersede(&v.loader)
			v.mode = ModeList
			v.deleteID = 0
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		v.cursor = moveCursor(v.cursor, -1, len(v.list))
	case "down", "j":
		v.cursor = moveCursor(v.cursor, 1, len(v.list))
	case "r":
		return v.Activate()
	case "a":
		return v.fetchProductsForCreate()
	case "e", "enter":
		if order, ok := v.selectedOrder(); ok {
			return v.fetchForEdit(order.ID)
		}
	case "d":
		if order, ok := v.selectedOrder(); ok {
			v.action.supersede(&v.loader)
			v.deleteID = order.ID
			v.mode = ModeConfirmDelete
		}
	}
	return nil
}

func (v *OrdersView) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return v.Activate()
	case "enter":
		if v.action.pending {
			return nil
		}
		return v.submit()
	case "tab", "down":
		v.focusField((v.focus + 1) % orderFieldCount)
		return nil
	case "shift+tab", "up":
		v.focusField((v.focus + orderFieldCount - 1) % orderFieldCount)
		return nil
	}
	if v.focus == orderProductField {
		switch msg.String() {
		case "right", "l", " ":
			v.cycleProduct(1)
		case "left", "h":
			v.cycleProduct(-1)
		}
		return nil
	}
	var cmd tea.Cmd
	v.quantity, cmd = v.quantity.Update(msg)
	return cmd
}

// cycleProduct walks the options, passing through the empty choice.
func (v *OrdersView) cycleProduct(delta int) {
	count := len(v.options) + 1
	slot := v.selected + 1
	slot = ((slot+delta)%count + count) % count
	v.selected = slot - 1
}

func (v *OrdersView) selectedOrder() (backoffice.Order, bool) {
	if v.cursor < 0 || v.cursor >= len(v.list) {
		return backoffice.Order{}, false
	}
	return v.list[v.cursor], true
}

func (v *OrdersView) focusField(index int) {
	v.focus = index
	if index == orderQuantityField {
		v.quantity.Focus()
		return
	}
	v.quantity.Blur()
}

func (v *OrdersView) resetForm() {
	v.options = nil
	v.selected = noProductSelected
	inputs := []textinput.Model{v.quantity}
	helpers.ClearForm(inputs)
	v.quantity = inputs[0]
	v.focus = orderProductField
}

// openForm fills the form. In edit mode the order's product is preselected
// only while it is still in the catalogue.
func (v *OrdersView) openForm(order *backoffice.Order, products []backoffice.Product) {
	v.resetForm()
	v.formError = ""
	v.options = products
	v.editID = 0
	v.mode = ModeFormCreate
	v.quantity.SetValue("1")
	if order != nil {
		v.editID = order.ID
		v.mode = ModeFormEdit
		v.quantity.SetValue(strconv.FormatInt(int64(order.Quantity), 10))
		for i, product := range products {
			if product.ID == order.ProductID {
				v.selected = i
				break
			}
		}
	}
	v.focusField(orderProductField)
}

// validate mirrors the form constraints: product required, quantity >= 1.
func (v *OrdersView) validate() (backoffice.OrderInput, string) {
	product, ok := v.SelectedProduct()
	if !ok {
		return backoffice.OrderInput{}, "Please select a product"
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(v.quantity.Value()), 10, 32)
	if err != nil {
		return backoffice.OrderInput{}, "Quantity must be a whole number"
	}
	if quantity < 1 {
		return backoffice.OrderInput{}, "Quantity must be at least 1"
	}
	return backoffice.OrderInput{ProductID: product.ID, Quantity: int32(quantity)}, ""
}

func (v *OrdersView) submit() tea.Cmd {
	input, problem := v.validate()
	v.formError = problem
	if problem != "" {
		return nil
	}
	token, spin := v.action.begin(&v.loader)
	client, id := v.orders, v.editID
	return tea.Batch(spin, func() tea.Msg {
		var err error
		if id != 0 {
			_, err = client.Update(context.Background(), id, input)
		} else {
			_, err = client.Create(context.Background(), input)
		}
		return orderSavedMsg{token: token, edit: id != 0, err: err}
	})
}

func (v *OrdersView) delete() tea.Cmd {
	token, spin := v.action.begin(&v.loader)
	client, id := v.orders, v.deleteID
	return tea.Batch(spin, func() tea.Msg {
		_, err := client.Delete(context.Background(), id)
		return orderDeletedMsg{token: token, err: err}
	})
}

func (v *OrdersView) fetchAll(gen generation) tea.Cmd {
	client := v.orders
	return func() tea.Msg {
		orders, err := client.GetAll(context.Background())
		return ordersLoadedMsg{gen: gen, orders: orders, err: err}
	}
}

func (v *OrdersView) fetchProductsForCreate() tea.Cmd {
	token, spin := v.action.begin(&v.loader)
	products := v.products
	return tea.Batch(spin, func() tea.Msg {
		list, err := products.GetAll(context.Background())
		return orderFormLoadedMsg{token: token, products: list, err: err}
	})
}

// fetchForEdit loads the order and the catalogue concurrently. Either
// failure fails the whole load.
func (v *OrdersView) fetchForEdit(id int64) tea.Cmd {
	token, spin := v.action.begin(&v.loader)
	orders, products := v.orders, v.products
	return tea.Batch(spin, func() tea.Msg {
		var (
			order   *backoffice.Order
			catalog []backoffice.Product
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			order, err = orders.GetByID(ctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			catalog, err = products.GetAll(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return orderFormLoadedMsg{token: token, edit: true, err: err}
		}
		return orderFormLoadedMsg{token: token, edit: true, order: order, products: catalog}
	})
}

func (v *OrdersView) View() string {
	var b strings.Builder
	switch v.mode {
	case ModeFormCreate, ModeFormEdit:
		v.renderForm(&b)
	default:
		v.renderList(&b)
	}
	if loading := v.loader.View(); loading != "" {
		b.WriteString("\n" + loading)
	}
	return b.String()
}

func (v *OrdersView) renderList(b *strings.Builder) {
	b.WriteString(helpers.TitleStyle.Render("Orders Management") + "\n")
	b.WriteString(helpers.HelpStyle.Render("a: Add New Order • e: Edit • d: Delete • r: Refresh") + "\n\n")

	header := fmt.Sprintf("  %-8s %-12s %-10s %s", "ID", "Product ID", "Quantity", "Created")
	b.WriteString(helpers.AccentStyle.Render(header) + "\n")

	switch {
	case !v.loaded:
	case v.listErr:
		b.WriteString(helpers.ErrorStyle.Render("Error loading orders. Please try again.") + "\n")
	case len(v.list) == 0:
		b.WriteString(helpers.MutedStyle.Render("No orders found. Create your first order!") + "\n")
	default:
		for i, order := range v.list {
			line := fmt.Sprintf("%-8d %-12d %-10d %s", order.ID, order.ProductID, order.Quantity, helpers.FormatDate(order.CreatedAt))
			if i == v.cursor {
				b.WriteString(helpers.SelectedStyle.Render("> ") + line + "\n")
				continue
			}
			b.WriteString("  " + line + "\n")
		}
	}

	if v.mode == ModeConfirmDelete {
		b.WriteString("\n" + helpers.Panel("Are you sure you want to delete this order?\n"+
			helpers.HelpStyle.Render("y: Delete • n: Cancel")) + "\n")
	}
}

func (v *OrdersView) renderForm(b *strings.Builder) {
	title, submit := "Add New Order", "Create Order"
	if v.mode == ModeFormEdit {
		title, submit = "Edit Order", "Update Order"
	}
	b.WriteString(helpers.TitleStyle.Render(title) + "\n\n")

	choice := "Select a product"
	if product, ok := v.SelectedProduct(); ok {
		choice = productOption(product)
	}
	marker := "  "
	if v.focus == orderProductField {
		marker = helpers.SelectedStyle.Render("> ")
	}

	var form strings.Builder
	form.WriteString("Product\n" + marker + "◀ " + choice + " ▶\n\n")
	form.WriteString("Quantity\n" + v.quantity.View() + "\n")
	if v.formError != "" {
		form.WriteString("\n" + helpers.ErrorStyle.Render(v.formError) + "\n")
	}
	form.WriteString("\n" + helpers.HelpStyle.Render("←/→: Product • enter: "+submit+" • tab: Next field • esc: Cancel"))
	b.WriteString(helpers.Panel(form.String()) + "\n")
}

// productOption labels a product in the selector as "<name> - <price>".
func productOption(p backoffice.Product) string {
	return p.Name + " - " + helpers.FormatCurrency(p.Price)
}
