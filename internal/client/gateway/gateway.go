package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is the single failure type every gateway operation
// surfaces: a numeric status and a display-ready message. Callers
// never branch on transport detail beyond these two fields.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// TokenSource supplies the session token attached to outgoing
// requests. An empty token means "no session".
type TokenSource interface {
	CurrentToken() string
}

type Client struct {
	baseURL string
	httpCl  *http.Client
	tokens  TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpCl:  &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

type (
	LoginResult struct {
		Token     string `json:"token"`
		Type      string `json:"type"`
		ExpiresIn int64  `json:"expiresIn"`
		Username  string `json:"username"`
	}

	Product struct {
		ID            int64   `json:"id"`
		ProductName   string  `json:"productName"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
		Supplier      string  `json:"supplier"`
	}

	ProductPage struct {
		Content       []Product `json:"content"`
		TotalPages    int       `json:"totalPages"`
		TotalElements int64     `json:"totalElements"`
		Number        int       `json:"number"`
		Size          int       `json:"size"`
	}

	ProductInput struct {
		ProductName   string  `json:"productName"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
		Supplier      string  `json:"supplier"`
	}

	ListQuery struct {
		Search   string
		Category string
		Page     int
		Size     int
	}
)

func (c *Client) Login(
	ctx context.Context, username, password string,
) (LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res)
	if err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

func (c *Client) ListProducts(
	ctx context.Context, q ListQuery,
) (ProductPage, error) {
	// Empty search and category are omitted entirely: sending
	// category= would filter for the empty category instead of
	// meaning "no filter".
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))

	var res ProductPage
	err := c.do(ctx, http.MethodGet, "/products", query, nil, &res)
	if err != nil {
		return ProductPage{}, err
	}
	return res, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := c.do(ctx, http.MethodGet, productPath(id), nil, nil, &res)
	if err != nil {
		return Product{}, err
	}
	return res, nil
}

func (c *Client) CreateProduct(
	ctx context.Context, in ProductInput,
) (Product, error) {
	var res Product
	err := c.do(ctx, http.MethodPost, "/products", nil, in, &res)
	if err != nil {
		return Product{}, err
	}
	return res, nil
}

func (c *Client) UpdateProduct(
	ctx context.Context, id int64, in ProductInput,
) (Product, error) {
	var res Product
	err := c.do(ctx, http.MethodPut, productPath(id), nil, in, &res)
	if err != nil {
		return Product{}, err
	}
	return res, nil
}

// DeleteProduct expects a no-content success: the response body is
// never decoded, so an empty body is not an error.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	out any,
) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "failed to encode request: " + err.Error()}
		}
		reqBody = bytes.NewReader(b)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return &APIError{Message: "failed to build request: " + err.Error()}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.CurrentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpCl.Do(req)
	if err != nil {
		return &APIError{Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: "failed to read response: " + err.Error()}
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Message: "failed to decode response: " + err.Error()}
	}
	return nil
}

// decodeError extracts a human-readable message from the error body,
// falling back to the status text, then to a generic HTTP error.
func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var errBody struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(resp.Body)
	if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
		apiErr.Message = errBody.Message
		return apiErr
	}

	if text := http.StatusText(resp.StatusCode); text != "" {
		apiErr.Message = text
		return apiErr
	}

	apiErr.Message = fmt.Sprintf("HTTP error %d", resp.StatusCode)
	return apiErr
}
