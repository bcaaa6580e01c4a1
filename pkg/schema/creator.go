package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = (*SchemaCreator)(nil)

// SchemaCreator registers the schema under its subject in the schema
// registry and reports the assigned ID. Registering an identical
// schema twice returns the existing ID.
type SchemaCreator struct {
	cl *sr.Client
}

func NewSchemaCreator(cl *sr.Client) SchemaCreator {
	return SchemaCreator{cl}
}

func (c SchemaCreator) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreator.DetermineID"

	ss, err := c.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
