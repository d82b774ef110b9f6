package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	"github.com/Apurer/go-gin-backoffice/internal/ui/helpers"
)

const (
	productNameField = iota
	productPriceField
)

type productsLoadedMsg struct {
	gen      generation
	products []backoffice.Product
	err      error
}

type productLoadedMsg struct {
	token   generation
	product *backoffice.Product
	err     error
}

type productSavedMsg struct {
	token generation
	edit  bool
	err   error
}

type productDeletedMsg struct {
	token generation
	err   error
}

// ProductsView lists products and drives their create, edit and delete flows.
type ProductsView struct {
	client ProductsClient
	logger *slog.Logger

	mode   Mode
	gen    generation
	action action

	products []backoffice.Product
	loaded   bool
	listErr  bool
	cursor   int

	editID    int64
	deleteID  int64
	inputs    []textinput.Model
	focus     int
	formError string

	loader helpers.Loader
}

func NewProductsView(client ProductsClient, opts ...Option) *ProductsView {
	o := buildOptions(opts)
	return &ProductsView{
		client: client,
		logger: o.logger,
		inputs: []textinput.Model{
			helpers.NewInput("Product name", 255),
			helpers.NewInput("0.00", 16),
		},
		loader: helpers.NewLoader(),
	}
}

func (v *ProductsView) Title() string { return "Products" }

func (v *ProductsView) Mode() Mode { return v.mode }

func (v *ProductsView) Products() []backoffice.Product { return v.products }

// EditingID is the id of the product in the edit form, zero when creating.
func (v *ProductsView) EditingID() int64 { return v.editID }

func (v *ProductsView) Loading() bool { return v.loader.Active() }

func (v *ProductsView) Capturing() bool {
	return v.mode == ModeFormCreate || v.mode == ModeFormEdit
}

// FormValues returns the raw name and price inputs.
func (v *ProductsView) FormValues() (string, string) {
	return v.inputs[productNameField].Value(), v.inputs[productPriceField].Value()
}

func (v *ProductsView) Init() tea.Cmd { return v.Activate() }

// Activate shows the list and fetches every product.
func (v *ProductsView) Activate() tea.Cmd {
	v.gen++
	v.mode = ModeList
	v.editID = 0
	v.deleteID = 0
	v.formError = ""
	v.loaded = false
	helpers.ClearForm(v.inputs)
	v.action.supersede(&v.loader)
	v.loader = v.loader.Reset()
	var spin tea.Cmd
	v.loader, spin = v.loader.Start()
	return tea.Batch(spin, v.fetchAll(v.gen))
}

func (v *ProductsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case productsLoadedMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.loader = v.loader.Stop()
		v.loaded = true
		if msg.err != nil {
			v.listErr = true
			v.products = nil
			v.logger.Error("load products", slog.String("error", msg.err.Error()))
			return v, nil
		}
		v.listErr = false
		v.products = msg.products
		v.cursor = moveCursor(v.cursor, 0, len(v.products))
		return v, nil
	case productLoadedMsg:
		if !v.action.finish(&v.loader, msg.token) {
			return v, nil
		}
		if msg.err != nil {
			v.logger.Error("fetch product", slog.String("error", msg.err.Error()))
			return v, helpers.Notify("Error fetching product details", helpers.KindError)
		}
		v.openForm(msg.product)
		return v, nil
	case productSavedMsg:
		if !v.action.finish(&v.loader, msg.token) {
			return v, nil
		}
		if msg.err != nil {
			action := "creating"
			if msg.edit {
				action = "updating"
			}
			v.logger.Error(action+" product", slog.String("error", msg.err.Error()))
			return v, helpers.Notify("Error "+action+" product", helpers.KindError)
		}
		text := "Product created successfully"
		if msg.edit {
			text = "Product updated successfully"
		}
		return v, tea.Batch(helpers.Notify(text, helpers.KindSuccess), v.Activate())
	case productDeletedMsg:
		if !v.action.finish(&v.loader, msg.token) {
			return v, nil
		}
		if msg.err != nil {
			v.mode = ModeList
			v.logger.Error("delete product", slog.String("error", msg.err.Error()))
			return v, helpers.Notify("Error deleting product", helpers.KindError)
		}
		return v, tea.Batch(helpers.Notify("Product deleted successfully", helpers.KindSuccess), v.Activate())
	}

	var cmd tea.Cmd
	v.loader, cmd = v.loader.Update(msg)
	return v, cmd
}

func (v *ProductsView) handleKey(msg tea.KeyMsg) tea.Cmd {
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
		v.cursor = moveCursor(v.cursor, -1, len(v.products))
	case "down", "j":
		v.cursor = moveCursor(v.cursor, 1, len(v.products))
	case "r":
		return v.Activate()
	case "a":
		v.action.supersede(&v.loader)
		v.openForm(nil)
	case "e", "enter":
		if product, ok := v.selected(); ok {
			return v.fetchForEdit(product.ID)
		}
	case "d":
		if product, ok := v.selected(); ok {
			v.action.supersede(&v.loader)
			v.deleteID = product.ID
			v.mode = ModeConfirmDelete
		}
	}
	return nil
}

func (v *ProductsView) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return v.Activate()
	case "enter":
		if v.action.pending {
			return nil
		}
		return v.submit()
	case "tab", "down":
		v.focusField((v.focus + 1) % len(v.inputs))
		return nil
	case "shift+tab", "up":
		v.focusField((v.focus + len(v.inputs) - 1) % len(v.inputs))
		return nil
	}
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

func (v *ProductsView) selected() (backoffice.Product, bool) {
	if v.cursor < 0 || v.cursor >= len(v.products) {
		return backoffice.Product{}, false
	}
	return v.products[v.cursor], true
}

func (v *ProductsView) focusField(index int) {
	v.focus = index
	helpers.FocusInput(v.inputs, index)
}

// openForm shows an empty form, or the product's values when product is set.
func (v *ProductsView) openForm(product *backoffice.Product) {
	helpers.ClearForm(v.inputs)
	v.formError = ""
	v.editID = 0
	v.mode = ModeFormCreate
	if product != nil {
		v.editID = product.ID
		v.mode = ModeFormEdit
		v.inputs[productNameField].SetValue(product.Name)
		v.inputs[productPriceField].SetValue(strconv.FormatFloat(product.Price, 'f', 2, 64))
	}
	v.focusField(productNameField)
}

// validate mirrors the form constraints: name required, price >= 0 in cents.
func (v *ProductsView) validate() (backoffice.ProductInput, string) {
	name, rawPrice := v.FormValues()
	name = strings.TrimSpace(name)
	if name == "" {
		return backoffice.ProductInput{}, "Name is required"
	}
	rawPrice = strings.TrimSpace(rawPrice)
	if rawPrice == "" {
		return backoffice.ProductInput{}, "Price is required"
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return backoffice.ProductInput{}, "Price must be a number"
	}
	if price.IsNegative() {
		return backoffice.ProductInput{}, "Price must not be negative"
	}
	if !price.Equal(price.Round(2)) {
		return backoffice.ProductInput{}, "Price must be in steps of 0.01"
	}
	return backoffice.ProductInput{Name: name, Price: price.InexactFloat64()}, ""
}

func (v *ProductsView) submit() tea.Cmd {
	input, problem := v.validate()
	v.formError = problem
	if problem != "" {
		return nil
	}
	token, spin := v.action.begin(&v.loader)
	client, id := v.client, v.editID
	return tea.Batch(spin, func() tea.Msg {
		var err error
		if id != 0 {
			_, err = client.Update(context.Background(), id, input)
		} else {
			_, err = client.Create(context.Background(), input)
		}
		return productSavedMsg{token: token, edit: id != 0, err: err}
	})
}

func (v *ProductsView) delete() tea.Cmd {
	token, spin := v.action.begin(&v.loader)
	client, id := v.client, v.deleteID
	return tea.Batch(spin, func() tea.Msg {
		_, err := client.Delete(context.Background(), id)
		return productDeletedMsg{token: token, err: err}
	})
}

func (v *ProductsView) fetchAll(gen generation) tea.Cmd {
	client := v.client
	return func() tea.Msg {
		products, err := client.GetAll(context.Background())
		return productsLoadedMsg{gen: gen, products: products, err: err}
	}
}

func (v *ProductsView) fetchForEdit(id int64) tea.Cmd {
	token, spin := v.action.begin(&v.loader)
	client := v.client
	return tea.Batch(spin, func() tea.Msg {
		product, err := client.GetByID(context.Background(), id)
		return productLoadedMsg{token: token, product: product, err: err}
	})
}

func (v *ProductsView) View() string {
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

func (v *ProductsView) renderList(b *strings.Builder) {
	b.WriteString(helpers.TitleStyle.Render("Products Management") + "\n")
	b.WriteString(helpers.HelpStyle.Render("a: Add New Product • e: Edit • d: Delete • r: Refresh") + "\n\n")

	switch {
	case !v.loaded:
	case v.listErr:
		b.WriteString(helpers.ErrorStyle.Render("Error loading products. Please try again.") + "\n")
	case len(v.products) == 0:
		b.WriteString(helpers.MutedStyle.Render("No products found. Add your first product!") + "\n")
	default:
		for i, product := range v.products {
			line := fmt.Sprintf("%-32s %s", product.Name, helpers.PriceStyle.Render(helpers.FormatCurrency(product.Price)))
			if added := helpers.FormatDate(product.CreatedAt); added != "" {
				line += helpers.MutedStyle.Render("  added " + added)
			}
			if i == v.cursor {
				b.WriteString(helpers.SelectedStyle.Render("> ") + line + "\n")
				continue
			}
			b.WriteString("  " + line + "\n")
		}
	}

	if v.mode == ModeConfirmDelete {
		b.WriteString("\n" + helpers.Panel("Are you sure you want to delete this product?\n"+
			helpers.HelpStyle.Render("y: Delete • n: Cancel")) + "\n")
	}
}

func (v *ProductsView) renderForm(b *strings.Builder) {
	title, submit := "Add New Product", "Create Product"
	if v.mode == ModeFormEdit {
		title, submit = "Edit Product", "Update Product"
	}
	b.WriteString(helpers.TitleStyle.Render(title) + "\n\n")

	var form strings.Builder
	form.WriteString("Product Name\n" + v.inputs[productNameField].View() + "\n\n")
	form.WriteString("Price ($)\n" + v.inputs[productPriceField].View() + "\n")
	if v.formError != "" {
		form.WriteString("\n" + helpers.ErrorStyle.Render(v.formError) + "\n")
	}
	form.WriteString("\n" + helpers.HelpStyle.Render("enter: "+submit+" • tab: Next field • esc: Cancel"))
	b.WriteString(helpers.Panel(form.String()) + "\n")
}
