package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	"github.com/Apurer/go-gin-backoffice/internal/ui/helpers"
)

var catalogue = []backoffice.Product{
	{ID: 1, Name: "Desk", Price: 120},
	{ID: 2, Name: "Lamp", Price: 9.99},
}

func newOrdersHarness(t *testing.T, products []backoffice.Product, orders ...backoffice.Order) (*OrdersView, *fakeOrders, *fakeProducts) {
	t.Helper()
	orderClient := newFakeOrders(orders...)
	productClient := newFakeProducts(products...)
	view := NewOrdersView(orderClient, productClient)
	settle(t, view, view.Init())
	return view, orderClient, productClient
}

func TestOrdersView_EmptyAndFailedList(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue)
	assert.Contains(t, view.View(), "Orders Management")
	assert.Contains(t, view.View(), "No orders found. Create your first order!")

	orders.failList = true
	press(t, view, "r")
	assert.Contains(t, view.View(), "Error loading orders. Please try again.")
}

func TestOrdersView_RendersRows(t *testing.T) {
	created := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	view, _, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 7, ProductID: 2, Quantity: 3, CreatedAt: created})

	out := view.View()
	assert.Contains(t, out, "Product ID")
	assert.Contains(t, out, "Jun 12, 2024")
	require.Len(t, view.Orders(), 1)
}

func TestOrdersView_CreateWithoutProductsReturnsToList(t *testing.T) {
	view, _, _ := newOrdersHarness(t, nil)

	notes := press(t, view, "a")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "No products available. Please add products first.", Kind: helpers.KindError}}, notes)
	assert.Equal(t, ModeList, view.Mode())
}

func TestOrdersView_CreateProductsFailure(t *testing.T) {
	view, _, products := newOrdersHarness(t, catalogue)
	products.failList = true

	notes := press(t, view, "a")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Error loading products", Kind: helpers.KindError}}, notes)
	assert.Equal(t, ModeList, view.Mode())
	assert.False(t, view.Loading())
}

func TestOrdersView_CreateFlow(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue)

	press(t, view, "a")
	require.Equal(t, ModeFormCreate, view.Mode())
	assert.Len(t, view.ProductOptions(), 2)
	_, picked := view.SelectedProduct()
	assert.False(t, picked, "create form starts without a product")
	assert.Equal(t, "1", view.QuantityValue())
	assert.Contains(t, view.View(), "Select a product")

	// product is required
	press(t, view, "enter")
	assert.Contains(t, view.View(), "Please select a product")
	assert.Empty(t, orders.creates)

	press(t, view, "right", "right")
	product, picked := view.SelectedProduct()
	require.True(t, picked)
	assert.Equal(t, int64(2), product.ID)
	assert.Contains(t, view.View(), "Lamp - $9.99")

	press(t, view, "tab", "backspace")
	typeText(t, view, "3")

	notes := press(t, view, "enter")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Order created successfully", Kind: helpers.KindSuccess}}, notes)
	require.Len(t, orders.creates, 1)
	assert.Equal(t, backoffice.OrderInput{ProductID: 2, Quantity: 3}, orders.creates[0])
	assert.Equal(t, ModeList, view.Mode())
	assert.Len(t, view.Orders(), 1)
}

func TestOrdersView_QuantityMustBePositive(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue)

	press(t, view, "a", "right", "tab", "backspace")
	typeText(t, view, "0")
	press(t, view, "enter")
	assert.Contains(t, view.View(), "Quantity must be at least 1")

	press(t, view, "backspace")
	typeText(t, view, "x")
	press(t, view, "enter")
	assert.Contains(t, view.View(), "Quantity must be a whole number")
	assert.Empty(t, orders.creates)
}

func TestOrdersView_EditPreselectsProduct(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 4})

	press(t, view, "e")
	require.Equal(t, ModeFormEdit, view.Mode())
	assert.Equal(t, int64(5), view.EditingID())
	product, picked := view.SelectedProduct()
	require.True(t, picked)
	assert.Equal(t, int64(2), product.ID)
	assert.Equal(t, "4", view.QuantityValue())
	assert.Contains(t, view.View(), "Update Order")

	press(t, view, "left")
	notes := press(t, view, "enter")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Order updated successfully", Kind: helpers.KindSuccess}}, notes)
	assert.Equal(t, backoffice.OrderInput{ProductID: 1, Quantity: 4}, orders.updates[5])
}

func TestOrdersView_EditWithDeletedProductSelectsNothing(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 99, Quantity: 2})

	press(t, view, "e")
	require.Equal(t, ModeFormEdit, view.Mode())
	_, picked := view.SelectedProduct()
	assert.False(t, picked)
	assert.Contains(t, view.View(), "Select a product")

	// saving forces a fresh choice
	press(t, view, "enter")
	assert.Contains(t, view.View(), "Please select a product")
	assert.Empty(t, orders.updates)
}

func TestOrdersView_EditLoadIsAllOrNothing(t *testing.T) {
	view, _, products := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 2})
	products.failList = true

	notes := press(t, view, "e")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Error fetching order details", Kind: helpers.KindError}}, notes)
	assert.Equal(t, ModeList, view.Mode())
	assert.Empty(t, view.ProductOptions())
}

func TestOrdersView_SaveFailureKeepsForm(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 2})
	orders.failSave = true

	notes := press(t, view, "e", "enter")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Error updating order", Kind: helpers.KindError}}, notes)
	assert.Equal(t, ModeFormEdit, view.Mode())
}

func TestOrdersView_DeleteFlow(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 2})

	press(t, view, "d")
	assert.Contains(t, view.View(), "Are you sure you want to delete this order?")
	press(t, view, "esc")
	assert.Equal(t, ModeList, view.Mode())

	notes := press(t, view, "d", "y")
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Order deleted successfully", Kind: helpers.KindSuccess}}, notes)
	assert.Empty(t, orders.items)
	assert.Contains(t, view.View(), "No orders found. Create your first order!")
}

func TestOrdersView_DropsStaleFormLoad(t *testing.T) {
	view, _, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 2})

	_, pending := view.Update(keyMsg("a"))
	settle(t, view, view.Activate())
	settle(t, view, pending)

	assert.Equal(t, ModeList, view.Mode())
	assert.False(t, view.Loading())
}

func TestOrdersView_LateFormLoadsDoNotReplaceLaterState(t *testing.T) {
	view, _, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 4})

	// a create form requested after the edit fetch wins
	_, pending := view.Update(keyMsg("e"))
	press(t, view, "a")
	assert.Empty(t, settle(t, view, pending))
	require.Equal(t, ModeFormCreate, view.Mode())
	assert.Zero(t, view.EditingID())
	assert.Equal(t, "1", view.QuantityValue())
	assert.False(t, view.Loading())

	// a delete confirmation wins over a pending products fetch
	press(t, view, "esc")
	_, pending = view.Update(keyMsg("a"))
	press(t, view, "d")
	settle(t, view, pending)
	assert.Equal(t, ModeConfirmDelete, view.Mode())
	assert.Empty(t, view.ProductOptions())
	assert.False(t, view.Loading())
}

func TestOrdersView_IgnoresRepeatedSubmitWhileSaving(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue)

	press(t, view, "a", "right")
	_, first := view.Update(keyMsg("enter"))
	_, again := view.Update(keyMsg("enter"))
	assert.Nil(t, again)

	notes := settle(t, view, first)
	assert.Equal(t, []helpers.NotifyMsg{{Message: "Order created successfully", Kind: helpers.KindSuccess}}, notes)
	assert.Len(t, orders.creates, 1)
}

func TestOrdersView_IgnoresRepeatedDeleteConfirmation(t *testing.T) {
	view, orders, _ := newOrdersHarness(t, catalogue, backoffice.Order{ID: 5, ProductID: 2, Quantity: 2})

	press(t, view, "d")
	_, first := view.Update(keyMsg("y"))
	_, again := view.Update(keyMsg("y"))
	assert.Nil(t, again)

	settle(t, view, first)
	assert.Equal(t, []int64{5}, orders.deletes)
	assert.Equal(t, ModeList, view.Mode())
}
