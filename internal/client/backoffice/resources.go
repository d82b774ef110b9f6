package backoffice

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Product is the API representation of a product.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductInput is the body of product create and update calls.
type ProductInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order is the API representation of an order.
type Order struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderInput is the body of order create and update calls.
type OrderInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// Message is the acknowledgement returned by mutations. ID is set on create.
type Message struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

const (
	productsEndpoint = "products"
	ordersEndpoint   = "orders"
)

func itemEndpoint(resource string, id int64) string {
	return resource + "/" + strconv.FormatInt(id, 10)
}

// ProductsAPI groups product calls.
type ProductsAPI struct {
	client *Client
}

func (p *ProductsAPI) GetAll(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := p.client.call(ctx, http.MethodGet, productsEndpoint, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductsAPI) GetByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := p.client.call(ctx, http.MethodGet, itemEndpoint(productsEndpoint, id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *ProductsAPI) Create(ctx context.Context, input ProductInput) (*Message, error) {
	var msg Message
	if err := p.client.call(ctx, http.MethodPost, productsEndpoint, input, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Update overwrites every field of the product.
func (p *ProductsAPI) Update(ctx context.Context, id int64, input ProductInput) (*Message, error) {
	var msg Message
	if err := p.client.call(ctx, http.MethodPut, itemEndpoint(productsEndpoint, id), input, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (p *ProductsAPI) Delete(ctx context.Context, id int64) (*Message, error) {
	var msg Message
	if err := p.client.call(ctx, http.MethodDelete, itemEndpoint(productsEndpoint, id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// OrdersAPI groups order calls.
type OrdersAPI struct {
	client *Client
}

func (o *OrdersAPI) GetAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := o.client.call(ctx, http.MethodGet, ordersEndpoint, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (o *OrdersAPI) GetByID(ctx context.Context, id int64) (*Order, error) {
	var order Order
	if err := o.client.call(ctx, http.MethodGet, itemEndpoint(ordersEndpoint, id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrdersAPI) Create(ctx context.Context, input OrderInput) (*Message, error) {
	var msg Message
	if err := o.client.call(ctx, http.MethodPost, ordersEndpoint, input, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Update overwrites every field of the order.
func (o *OrdersAPI) Update(ctx context.Context, id int64, input OrderInput) (*Message, error) {
	var msg Message
	if err := o.client.call(ctx, http.MethodPut, itemEndpoint(ordersEndpoint, id), input, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (o *OrdersAPI) Delete(ctx context.Context, id int64) (*Message, error) {
	var msg Message
	if err := o.client.call(ctx, http.MethodDelete, itemEndpoint(ordersEndpoint, id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
