package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nfjones/blogmart-api/internal/api/shared"
	"github.com/nfjones/blogmart-api/internal/domain"
	"github.com/nfjones/blogmart-api/internal/service"
)

// defaultProductPageLimit is the page size applied when the client does not
// send a limit parameter.
const defaultProductPageLimit = 100

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	InStock     *bool   `json:"in_stock"    validate:"omitempty"`
	SKU         string  `json:"sku"         validate:"required,max=50"`
}

// UpdateProductRequest represents the request body for a partial product
// update. Absent fields leave the stored values untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	InStock     *bool    `json:"in_stock"    validate:"omitempty"`
	SKU         *string  `json:"sku"         validate:"omitempty,min=1,max=50"`
}

// ProductResponse represents the response data for a product.
type ProductResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	InStock     bool       `json:"in_stock"`
	SKU         string     `json:"sku"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
	}
}

// Create handles POST /products/ requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// in_stock defaults to true when absent.
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product, err := h.productService.Create(r.Context(), req.Name, req.Description, req.Price, inStock, req.SKU)
	if err != nil {
		message := err.Error()
		if MapErrorToStatusCode(err) == http.StatusConflict {
			message = fmt.Sprintf("Product with sku '%s' already exists", req.SKU)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, productToResponse(product))
}

// List handles GET /products/ requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageParams(r, defaultProductPageLimit)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	products, err := h.productService.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, productToResponse(product))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("Product with id %d not found", id))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(product))
}

// Update handles PATCH /products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	var req UpdateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := domain.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		InStock:     req.InStock,
		SKU:         req.SKU,
	}

	product, err := h.productService.Update(r.Context(), id, update)
	if err != nil {
		message := err.Error()
		switch MapErrorToStatusCode(err) {
		case http.StatusConflict:
			if req.SKU != nil {
				message = fmt.Sprintf("Product with sku '%s' already exists", *req.SKU)
			}
		case http.StatusNotFound:
			message = fmt.Sprintf("Product with id %d not found", id)
		}
		HandleAPIError(w, r, err, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(product))
}

// Delete handles DELETE /products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, fmt.Sprintf("Product with id %d not found", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// productToResponse converts a domain.Product to a ProductResponse.
func productToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		InStock:     product.InStock,
		SKU:         product.SKU,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
