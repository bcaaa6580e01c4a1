package schema_test

import (
	"context"
	"testing"

	"github.com/Pavithra-p25/ecommerce-catalog/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeProductEventV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductEventSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ProductEventSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeProductEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		eventValue1 := schema.ProductEventV1{
			EventID: "testEventID",
			Kind:    "created",
			Product: schema.ProductV1{
				ID:            42,
				ProductName:   "testProductName",
				Category:      "testCategory",
				Description:   "testDescription",
				Price:         123.45,
				StockQuantity: 5,
				Supplier:      "testSupplier",
			},
			Actor:     "testActor",
			UnixMilli: 1700000000000,
		}

		encodedData, err := serde.Encode(eventValue1)
		require.NoError(t, err)

		var eventValue2 schema.ProductEventV1
		err = serde.Decode(encodedData, &eventValue2)
		require.NoError(t, err)

		assert.Equal(t, eventValue1.EventID, eventValue2.EventID)
		assert.Equal(t, eventValue1.Kind, eventValue2.Kind)
		assert.Equal(t, eventValue1.Product, eventValue2.Product)
		assert.Equal(t, eventValue1.Actor, eventValue2.Actor)
		assert.Equal(t, eventValue1.UnixMilli, eventValue2.UnixMilli)
	})

}
