package schema

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product", "type": {
			"type": "record",
			"name": "product",
			"fields": [
				{"name": "id", "type": "long"},
				{"name": "product_name", "type": "string"},
				{"name": "category", "type": "string"},
				{"name": "description", "type": "string"},
				{"name": "price", "type": "double"},
				{"name": "stock_quantity", "type": "int"},
				{"name": "supplier", "type": "string"}
			]
		}},
		{"name": "actor", "type": "string"},
		{"name": "unix_milli", "type": "long"}
	]
}`

type (
	ProductEventV1 struct {
		EventID   string    `avro:"event_id"`
		Kind      string    `avro:"kind"`
		Product   ProductV1 `avro:"product"`
		Actor     string    `avro:"actor"`
		UnixMilli int64     `avro:"unix_milli"`
	}

	ProductV1 struct {
		ID            int64   `avro:"id"`
		ProductName   string  `avro:"product_name"`
		Category      string  `avro:"category"`
		Description   string  `avro:"description"`
		Price         float64 `avro:"price"`
		StockQuantity int     `avro:"stock_quantity"`
		Supplier      string  `avro:"supplier"`
	}
)
