package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
	"github.com/Pavithra-p25/ecommerce-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ProductEventsProducer = (*ProductEventsProducer)(nil)

// A ProductEventsProducer publishes [domain.ProductEvent] to the
// catalog audit topic.
type ProductEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewProductEventsProducer(
	opts ...ProducerOpt,
) (ProductEventsProducer, error) {
	const op = "NewProductEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ProductEventsProducer{}, opErr(err, op)
		}
	}
	return ProductEventsProducer{options.cl, options.encoder}, nil
}

func (p ProductEventsProducer) Close() {
	const op = "ProductEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ProductEventsProducer) ProduceEvent(
	ctx context.Context, ev domain.ProductEvent,
) error {
	const op = "ProductEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(ev)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, &r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p ProductEventsProducer) createRecord(
	ev domain.ProductEvent,
) (kgo.Record, error) {
	const op = "ProductEventsProducer.createRecord"

	s := p.toSchema(ev)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, op)
	}

	// Keyed by product ID so a product's history stays in one partition.
	r := kgo.Record{Key: []byte(strconv.FormatInt(s.Product.ID, 10)), Value: b}
	return r, nil
}

func (ProductEventsProducer) toSchema(
	ev domain.ProductEvent,
) schema.ProductEventV1 {
	return schema.ProductEventV1{
		EventID: ev.EventID,
		Kind:    string(ev.Kind),
		Product: schema.ProductV1{
			ID:            ev.Product.ID,
			ProductName:   ev.Product.ProductName,
			Category:      ev.Product.Category,
			Description:   ev.Product.Description,
			Price:         ev.Product.Price,
			StockQuantity: ev.Product.StockQuantity,
			Supplier:      ev.Product.Supplier,
		},
		Actor:     ev.Actor,
		UnixMilli: ev.UnixMilli,
	}
}
