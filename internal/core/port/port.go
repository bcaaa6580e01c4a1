package port

import (
	"context"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
)

// Inbound ports.

type CatalogReader interface {
	ListProducts(context.Context, domain.ProductQuery) (domain.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

type CatalogWriter interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CatalogCounter interface {
	CountProducts(ctx context.Context, category string) (int64, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.AuthGrant, error)
}

// Outbound ports.

type ProductsRepository interface {
	List(context.Context, domain.ProductQuery) (domain.ProductPage, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(context.Context, domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, category string) (int64, error)
}

type AdminsRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.Admin, error)
	Create(ctx context.Context, a domain.Admin) error
}

type ProductEventsProducer interface {
	ProduceEvent(context.Context, domain.ProductEvent) error
}

type TokenIssuer interface {
	Issue(username string) (token string, expiresIn int64, err error)
}

type TokenVerifier interface {
	Verify(token string) (username string, err error)
}
