package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/gateway"
)

var ErrNoDeletePending = errors.New("no delete is pending confirmation")

// ProductForm carries the raw textual input of the product form.
// Price and stock are parsed to numbers before transmission; they
// are never sent as strings.
type ProductForm struct {
	ProductName   string
	Category      string
	Description   string
	Price         string
	StockQuantity string
	Supplier      string
}

// FormError maps field names to inline messages. It is reported to
// the form, never to the global notification stream.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

func (f ProductForm) parse() (gateway.ProductInput, error) {
	fields := make(map[string]string)

	if len(strings.TrimSpace(f.ProductName)) < 2 {
		fields["productName"] = "must be at least 2 characters"
	}
	if strings.TrimSpace(f.Category) == "" {
		fields["category"] = "is required"
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		fields["price"] = "must be a number"
	} else if price <= 0 {
		fields["price"] = "must be greater than zero"
	}

	stock, err := strconv.Atoi(strings.TrimSpace(f.StockQuantity))
	if err != nil {
		fields["stockQuantity"] = "must be an integer"
	} else if stock < 0 {
		fields["stockQuantity"] = "must not be negative"
	}

	if len(fields) > 0 {
		return gateway.ProductInput{}, &FormError{Fields: fields}
	}

	return gateway.ProductInput{
		ProductName:   strings.TrimSpace(f.ProductName),
		Category:      strings.TrimSpace(f.Category),
		Description:   strings.TrimSpace(f.Description),
		Price:         price,
		StockQuantity: stock,
		Supplier:      strings.TrimSpace(f.Supplier),
	}, nil
}

type Mutator interface {
	CreateProduct(context.Context, gateway.ProductInput) (gateway.Product, error)
	UpdateProduct(ctx context.Context, id int64, in gateway.ProductInput) (gateway.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type Refresher interface {
	Refresh(context.Context)
}

// DeleteIntent is the armed-but-unconfirmed state of a pending
// deletion. No network call happens until it is confirmed.
type DeleteIntent struct {
	Open   bool
	Target gateway.Product
}

// Coordinator executes catalog writes and keeps the displayed list
// consistent by refreshing the controller's current page after each
// successful mutation.
type Coordinator struct {
	mu     sync.Mutex
	api    Mutator
	list   Refresher
	intent DeleteIntent
}

func NewCoordinator(api Mutator, list Refresher) *Coordinator {
	return &Coordinator{api: api, list: list}
}

// Create validates the form locally first; invalid input never
// reaches the network.
func (c *Coordinator) Create(
	ctx context.Context, form ProductForm,
) (gateway.Product, error) {
	in, err := form.parse()
	if err != nil {
		return gateway.Product{}, err
	}

	created, err := c.api.CreateProduct(ctx, in)
	if err != nil {
		return gateway.Product{}, err
	}

	c.list.Refresh(ctx)
	return created, nil
}

func (c *Coordinator) Update(
	ctx context.Context, id int64, form ProductForm,
) (gateway.Product, error) {
	in, err := form.parse()
	if err != nil {
		return gateway.Product{}, err
	}

	updated, err := c.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return gateway.Product{}, err
	}

	c.list.Refresh(ctx)
	return updated, nil
}

// ArmDelete opens the confirmation step for the target product.
func (c *Coordinator) ArmDelete(p gateway.Product) {
	c.mu.Lock()
	c.intent = DeleteIntent{Open: true, Target: p}
	c.mu.Unlock()
}

// CancelDelete clears the pending intent with no network effect.
func (c *Coordinator) CancelDelete() {
	c.mu.Lock()
	c.intent = DeleteIntent{}
	c.mu.Unlock()
}

func (c *Coordinator) PendingDelete() DeleteIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intent
}

// ConfirmDelete issues the delete for the armed target. Confirming
// with nothing armed is an error and issues no call.
func (c *Coordinator) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	intent := c.intent
	c.mu.Unlock()

	if !intent.Open {
		return ErrNoDeletePending
	}

	if err := c.api.DeleteProduct(ctx, intent.Target.ID); err != nil {
		return err
	}

	c.mu.Lock()
	c.intent = DeleteIntent{}
	c.mu.Unlock()

	c.list.Refresh(ctx)
	return nil
}
