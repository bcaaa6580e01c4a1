package domain

type Product struct {
	ID            int64
	ProductName   string
	Category      string
	Description   string
	Price         float64
	StockQuantity int
	Supplier      string
}

// ProductQuery is the listing parameters tuple. Empty Search and
// Category mean "no filter".
type ProductQuery struct {
	Search   string
	Category string
	Page     int
	Size     int
}

type ProductPage struct {
	Content       []Product
	TotalPages    int
	TotalElements int64
	Number        int
	Size          int
}

type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// ProductEvent is emitted to the audit stream after each successful
// catalog mutation.
type ProductEvent struct {
	EventID   string
	Kind      EventKind
	Product   Product
	Actor     string
	UnixMilli int64
}

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
}
