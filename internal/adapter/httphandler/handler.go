package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
)

// POST /auth/login JSON {"username", "password"} (200 OK, 400 Bad request)

type AuthHandler struct {
	authenticator port.Authenticator
}

func RegisterAuth(mux *http.ServeMux, authenticator port.Authenticator) {
	h := AuthHandler{authenticator}
	mux.HandleFunc("POST /auth/login", h.Login)
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Login"
	log := slog.With("op", op)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	grant, err := h.authenticator.Authenticate(
		r.Context(), req.Username, req.Password,
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "invalid credentials")
			log.Warn("login rejected", "username", req.Username)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		log.Error("failed to authenticate", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     grant.Token,
		Type:      "Bearer",
		ExpiresIn: grant.ExpiresIn,
		Username:  grant.Username,
	})
	log.Info("login succeeded", "username", grant.Username)
}

// GET    /products?search=&category=&page=&size= (200 OK)
// GET    /products/{id} (200 OK, 404 Not found)
// POST   /products JSON (201 Created, 400 Bad request)
// PUT    /products/{id} JSON (200 OK, 400 Bad request, 404 Not found)
// DELETE /products/{id} (204 No content, 404 Not found)
// GET    /products/count, /products/count/{category} (200 OK)
// All product routes require Authorization: Bearer <token>.

type ProductsHandler struct {
	reader  port.CatalogReader
	writer  port.CatalogWriter
	counter port.CatalogCounter
}

type Middleware func(http.Handler) http.Handler

func RegisterProducts(
	mux *http.ServeMux,
	reader port.CatalogReader,
	writer port.CatalogWriter,
	counter port.CatalogCounter,
	auth Middleware,
) {
	h := ProductsHandler{reader, writer, counter}
	mux.Handle("GET /products", auth(http.HandlerFunc(h.List)))
	mux.Handle("GET /products/{id}", auth(http.HandlerFunc(h.Get)))
	mux.Handle("POST /products", auth(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /products/{id}", auth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /products/{id}", auth(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /products/count", auth(http.HandlerFunc(h.Count)))
	mux.Handle("GET /products/count/{category}", auth(http.HandlerFunc(h.Count)))
}

func (h ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.List"
	log := slog.With("op", op)

	qv := r.URL.Query()
	q := domain.ProductQuery{
		Search:   qv.Get("search"),
		Category: qv.Get("category"),
	}
	q.Page, _ = strconv.Atoi(qv.Get("page"))
	q.Size, _ = strconv.Atoi(qv.Get("size"))

	page, err := h.reader.ListProducts(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		log.Error("failed to list products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page))
}

func (h ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Get"
	log := slog.With("op", op)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.reader.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get product")
		log.Error("failed to get product", "id", id, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

func (h ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Create"
	log := slog.With("op", op)

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	created, err := h.writer.CreateProduct(r.Context(), toDomain(req))
	if err != nil {
		var ve domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create product")
		log.Error("failed to create product", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(created))
	log.Info("product created", "id", created.ID)
}

func (h ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Update"
	log := slog.With("op", op)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	updated, err := h.writer.UpdateProduct(r.Context(), id, toDomain(req))
	if err != nil {
		var ve domain.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update product")
			log.Error("failed to update product", "id", id, "err", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toResponse(updated))
	log.Info("product updated", "id", id)
}

func (h ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Delete"
	log := slog.With("op", op)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.writer.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		log.Error("failed to delete product", "id", id, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("product deleted", "id", id)
}

func (h ProductsHandler) Count(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Count"
	log := slog.With("op", op)

	category := r.PathValue("category")

	n, err := h.counter.CountProducts(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count products")
		log.Error("failed to count products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, n)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message, Status: status})
}

func toDomain(req ProductRequest) domain.Product {
	return domain.Product{
		ProductName:   req.ProductName,
		Category:      req.Category,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Supplier:      req.Supplier,
	}
}

func toResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		ProductName:   p.ProductName,
		Category:      p.Category,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Supplier:      p.Supplier,
	}
}

func toPageResponse(page domain.ProductPage) ProductPageResponse {
	content := make([]ProductResponse, 0, len(page.Content))
	for _, p := range page.Content {
		content = append(content, toResponse(p))
	}
	return ProductPageResponse{
		Content:       content,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		Number:        page.Number,
		Size:          page.Size,
	}
}
