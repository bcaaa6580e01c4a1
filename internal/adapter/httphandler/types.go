package httphandler

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Token     string `json:"token"`
		Type      string `json:"type"`
		ExpiresIn int64  `json:"expiresIn"`
		Username  string `json:"username"`
	}
)

type (
	ProductRequest struct {
		ProductName   string  `json:"productName"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
		Supplier      string  `json:"supplier"`
	}

	ProductResponse struct {
		ID            int64   `json:"id"`
		ProductName   string  `json:"productName"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
		Supplier      string  `json:"supplier"`
	}

	ProductPageResponse struct {
		Content       []ProductResponse `json:"content"`
		TotalPages    int               `json:"totalPages"`
		TotalElements int64             `json:"totalElements"`
		Number        int               `json:"number"`
		Size          int               `json:"size"`
	}
)

type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
