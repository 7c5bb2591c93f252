package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
	"shopapi/pkg/validate"
)

type productHandler struct {
	products service.ProductService
}

type productJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toProductJSON(p *model.Product) productJSON {
	return productJSON{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.UTC().Format(model.TimestampLayout),
		UpdatedAt:   p.UpdatedAt.UTC().Format(model.TimestampLayout),
	}
}

type searchProductsResponse struct {
	Products   []productJSON `json:"products"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
}

func (h *productHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, violations := validate.EntityID(mux.Vars(r)["id"], validate.JSONNames)
	if len(violations) > 0 {
		respondWithViolations(w, "GetProduct", violations)
		return
	}

	product, err := h.products.GetProduct(id)
	if err != nil {
		handleServiceError(w, "GetProduct", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toProductJSON(product))
}

type createProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Quantity    *int64  `json:"quantity"`
	Category    *string `json:"category"`
}

func (h *productHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := validate.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	}
	if violations := validate.CreateProduct(in, validate.JSONNames); len(violations) > 0 {
		respondWithViolations(w, "CreateProduct", violations)
		return
	}

	product, err := h.products.CreateProduct(model.NewProduct{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Quantity:    int(*req.Quantity),
		Category:    *req.Category,
	})
	if err != nil {
		handleServiceError(w, "CreateProduct", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toProductJSON(product))
}

func (h *productHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var parseViolations validate.Violations
	minPrice := queryInt(q, "minPrice", &parseViolations)
	maxPrice := queryInt(q, "maxPrice", &parseViolations)
	page := queryInt(q, "page", &parseViolations)
	pageSize := queryInt(q, "pageSize", &parseViolations)

	in := validate.SearchProductsInput{
		Query:    queryString(q, "query"),
		Category: queryString(q, "category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		PageSize: pageSize,
	}
	violations := mergeViolations(parseViolations, validate.SearchProducts(in, validate.JSONNames))
	if len(violations) > 0 {
		respondWithViolations(w, "SearchProducts", violations)
		return
	}

	result, err := h.products.SearchProducts(service.SearchProductsQuery{
		Query:    q.Get("query"),
		Category: q.Get("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     int(*page),
		PageSize: int(*pageSize),
	})
	if err != nil {
		handleServiceError(w, "SearchProducts", err)
		return
	}

	products := make([]productJSON, len(result.Products))
	for i := range result.Products {
		products[i] = toProductJSON(&result.Products[i])
	}
	respondWithJSON(w, http.StatusOK, searchProductsResponse{
		Products:   products,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}
