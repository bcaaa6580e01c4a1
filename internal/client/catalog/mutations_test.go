package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/catalog"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMutator struct {
	creates []gateway.ProductInput
	updates []gateway.ProductInput
	deletes []int64
	err     error
}

func (m *fakeMutator) CreateProduct(
	_ context.Context, in gateway.ProductInput,
) (gateway.Product, error) {
	m.creates = append(m.creates, in)
	if m.err != nil {
		return gateway.Product{}, m.err
	}
	return gateway.Product{ID: 1, ProductName: in.ProductName}, nil
}

func (m *fakeMutator) UpdateProduct(
	_ context.Context, id int64, in gateway.ProductInput,
) (gateway.Product, error) {
	m.updates = append(m.updates, in)
	if m.err != nil {
		return gateway.Product{}, m.err
	}
	return gateway.Product{ID: id, ProductName: in.ProductName}, nil
}

func (m *fakeMutator) DeleteProduct(_ context.Context, id int64) error {
	m.deletes = append(m.deletes, id)
	return m.err
}

type fakeRefresher struct {
	refreshes int
}

func (r *fakeRefresher) Refresh(context.Context) {
	r.refreshes++
}

func validForm() catalog.ProductForm {
	return catalog.ProductForm{
		ProductName:   "Cog",
		Category:      "Parts",
		Price:         "9.99",
		StockQuantity: "5",
	}
}

func TestCoordinatorCreate(t *testing.T) {

	t.Run("ParsesTextualNumbers", func(t *testing.T) {
		api := &fakeMutator{}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		created, err := c.Create(t.Context(), validForm())
		require.NoError(t, err)
		assert.Equal(t, "Cog", created.ProductName)

		require.Len(t, api.creates, 1)
		assert.Equal(t, 9.99, api.creates[0].Price)
		assert.Equal(t, 5, api.creates[0].StockQuantity)
		assert.Equal(t, 1, list.refreshes)
	})

	t.Run("InvalidFormNeverHitsNetwork", func(t *testing.T) {
		api := &fakeMutator{}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		form := catalog.ProductForm{
			ProductName:   "C",
			Category:      "",
			Price:         "free",
			StockQuantity: "-2",
		}
		_, err := c.Create(t.Context(), form)

		var formErr *catalog.FormError
		require.ErrorAs(t, err, &formErr)
		assert.Contains(t, formErr.Fields, "productName")
		assert.Contains(t, formErr.Fields, "category")
		assert.Contains(t, formErr.Fields, "price")
		assert.Contains(t, formErr.Fields, "stockQuantity")

		assert.Empty(t, api.creates)
		assert.Zero(t, list.refreshes)
	})

	t.Run("NoRefreshOnServerError", func(t *testing.T) {
		api := &fakeMutator{err: errors.New("duplicate name")}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		_, err := c.Create(t.Context(), validForm())
		require.Error(t, err)
		assert.Zero(t, list.refreshes)
	})
}

func TestCoordinatorUpdate(t *testing.T) {
	api := &fakeMutator{}
	list := &fakeRefresher{}
	c := catalog.NewCoordinator(api, list)

	updated, err := c.Update(t.Context(), 7, validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.ID)
	require.Len(t, api.updates, 1)
	assert.Equal(t, 1, list.refreshes)
}

func TestCoordinatorDelete(t *testing.T) {

	t.Run("RequiresConfirmation", func(t *testing.T) {
		api := &fakeMutator{}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		c.ArmDelete(gateway.Product{ID: 3, ProductName: "Cog"})

		intent := c.PendingDelete()
		assert.True(t, intent.Open)
		assert.Equal(t, int64(3), intent.Target.ID)

		// Arming alone issues zero network calls.
		assert.Empty(t, api.deletes)
	})

	t.Run("ConfirmIssuesDeleteAndRefreshes", func(t *testing.T) {
		api := &fakeMutator{}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		c.ArmDelete(gateway.Product{ID: 3, ProductName: "Cog"})
		require.NoError(t, c.ConfirmDelete(t.Context()))

		assert.Equal(t, []int64{3}, api.deletes)
		assert.Equal(t, 1, list.refreshes)
		assert.False(t, c.PendingDelete().Open)
	})

	t.Run("CancelHasNoNetworkEffect", func(t *testing.T) {
		api := &fakeMutator{}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		c.ArmDelete(gateway.Product{ID: 3, ProductName: "Cog"})
		c.CancelDelete()

		assert.False(t, c.PendingDelete().Open)
		assert.Empty(t, api.deletes)
		assert.Zero(t, list.refreshes)

		err := c.ConfirmDelete(t.Context())
		assert.ErrorIs(t, err, catalog.ErrNoDeletePending)
		assert.Empty(t, api.deletes)
	})

	t.Run("ConfirmWithoutArmIsRejected", func(t *testing.T) {
		api := &fakeMutator{}
		c := catalog.NewCoordinator(api, &fakeRefresher{})

		err := c.ConfirmDelete(t.Context())
		assert.ErrorIs(t, err, catalog.ErrNoDeletePending)
		assert.Empty(t, api.deletes)
	})

	t.Run("IntentSurvivesFailedDelete", func(t *testing.T) {
		api := &fakeMutator{err: errors.New("boom")}
		list := &fakeRefresher{}
		c := catalog.NewCoordinator(api, list)

		c.ArmDelete(gateway.Product{ID: 3})
		require.Error(t, c.ConfirmDelete(t.Context()))

		assert.True(t, c.PendingDelete().Open)
		assert.Zero(t, list.refreshes)
	})
}
