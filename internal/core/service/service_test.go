package service_test

import (
	"context"
	"testing"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductsRepository struct {
	mock.Mock
}

func (m *MockProductsRepository) List(
	ctx context.Context, q domain.ProductQuery,
) (domain.ProductPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.ProductPage), args.Error(1)
}

func (m *MockProductsRepository) Get(
	ctx context.Context, id int64,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsRepository) Create(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsRepository) Update(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductsRepository) Count(
	ctx context.Context, category string,
) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

type recordingProducer struct {
	events []domain.ProductEvent
}

func (p *recordingProducer) ProduceEvent(
	_ context.Context, ev domain.ProductEvent,
) error {
	p.events = append(p.events, ev)
	return nil
}

func validProduct() domain.Product {
	return domain.Product{
		ProductName:   "Cog",
		Category:      "Parts",
		Price:         9.99,
		StockQuantity: 5,
	}
}

func TestCatalogServiceCreate(t *testing.T) {

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*domain.Product)
			field  string
		}{
			{"ShortName", func(p *domain.Product) { p.ProductName = "C" }, "productName"},
			{"MissingCategory", func(p *domain.Product) { p.Category = " " }, "category"},
			{"ZeroPrice", func(p *domain.Product) { p.Price = 0 }, "price"},
			{"NegativeStock", func(p *domain.Product) { p.StockQuantity = -1 }, "stockQuantity"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				repo := new(MockProductsRepository)
				producer := &recordingProducer{}
				s := service.NewCatalog(repo, producer)

				p := validProduct()
				tc.mutate(&p)

				_, err := s.CreateProduct(t.Context(), p)

				var ve domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.field, ve.Field)

				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				assert.Empty(t, producer.events)
			})
		}
	})

	t.Run("EmitsCreatedEvent", func(t *testing.T) {
		repo := new(MockProductsRepository)
		producer := &recordingProducer{}
		s := service.NewCatalog(repo, producer)

		p := validProduct()
		created := p
		created.ID = 42
		repo.On("Create", t.Context(), p).Return(created, nil)

		got, err := s.CreateProduct(t.Context(), p)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)

		require.Len(t, producer.events, 1)
		ev := producer.events[0]
		assert.Equal(t, domain.EventCreated, ev.Kind)
		assert.Equal(t, int64(42), ev.Product.ID)
		assert.NotEmpty(t, ev.EventID)
		assert.NotZero(t, ev.UnixMilli)
	})

	t.Run("AttributesEventToContextActor", func(t *testing.T) {
		repo := new(MockProductsRepository)
		producer := &recordingProducer{}
		s := service.NewCatalog(repo, producer)

		ctx := domain.WithActor(t.Context(), "admin")
		p := validProduct()
		repo.On("Create", ctx, p).Return(p, nil)

		_, err := s.CreateProduct(ctx, p)
		require.NoError(t, err)

		require.Len(t, producer.events, 1)
		assert.Equal(t, "admin", producer.events[0].Actor)
	})

	t.Run("NilProducerIsAllowed", func(t *testing.T) {
		repo := new(MockProductsRepository)
		s := service.NewCatalog(repo, nil)

		p := validProduct()
		repo.On("Create", t.Context(), p).Return(p, nil)

		_, err := s.CreateProduct(t.Context(), p)
		assert.NoError(t, err)
	})
}

func TestCatalogServiceUpdate(t *testing.T) {
	repo := new(MockProductsRepository)
	producer := &recordingProducer{}
	s := service.NewCatalog(repo, producer)

	p := validProduct()
	want := p
	want.ID = 7
	repo.On("Update", t.Context(), want).Return(want, nil)

	got, err := s.UpdateProduct(t.Context(), 7, p)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	require.Len(t, producer.events, 1)
	assert.Equal(t, domain.EventUpdated, producer.events[0].Kind)
}

func TestCatalogServiceDelete(t *testing.T) {

	t.Run("EmitsDeletedEventWithSnapshot", func(t *testing.T) {
		repo := new(MockProductsRepository)
		producer := &recordingProducer{}
		s := service.NewCatalog(repo, producer)

		ctx := domain.WithActor(t.Context(), "admin")
		p := validProduct()
		p.ID = 7
		repo.On("Get", ctx, int64(7)).Return(p, nil)
		repo.On("Delete", ctx, int64(7)).Return(nil)

		require.NoError(t, s.DeleteProduct(ctx, 7))

		require.Len(t, producer.events, 1)
		ev := producer.events[0]
		assert.Equal(t, domain.EventDeleted, ev.Kind)
		assert.Equal(t, "Cog", ev.Product.ProductName)
		assert.Equal(t, "admin", ev.Actor)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		repo := new(MockProductsRepository)
		producer := &recordingProducer{}
		s := service.NewCatalog(repo, producer)

		repo.On("Get", t.Context(), int64(9)).
			Return(domain.Product{}, domain.ErrNotFound)

		err := s.DeleteProduct(t.Context(), 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.Empty(t, producer.events)
	})
}

func TestCatalogServiceList(t *testing.T) {

	t.Run("NormalizesQuery", func(t *testing.T) {
		repo := new(MockProductsRepository)
		s := service.NewCatalog(repo, nil)

		want := domain.ProductQuery{Search: "cog", Page: 0, Size: 10}
		repo.On("List", t.Context(), want).Return(domain.ProductPage{}, nil)

		_, err := s.ListProducts(t.Context(), domain.ProductQuery{
			Search: "  cog ", Page: -3, Size: 0,
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("CapsPageSize", func(t *testing.T) {
		repo := new(MockProductsRepository)
		s := service.NewCatalog(repo, nil)

		want := domain.ProductQuery{Page: 0, Size: 100}
		repo.On("List", t.Context(), want).Return(domain.ProductPage{}, nil)

		_, err := s.ListProducts(t.Context(), domain.ProductQuery{Size: 5000})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
