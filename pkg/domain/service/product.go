package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/store"
)

type SearchProductsQuery struct {
	Query    string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Page     int
	PageSize int
}

type ProductPage struct {
	Products   []model.Product
	TotalCount int
	Page       int
	PageSize   int
}

type ProductService interface {
	CreateProduct(data model.NewProduct) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	SearchProducts(q SearchProductsQuery) (*ProductPage, error)
}

func NewProductService(products *store.ProductStore, dispatcher EventDispatcher) ProductService {
	return &productService{
		products:   products,
		dispatcher: dispatcher,
	}
}

type productService struct {
	products   *store.ProductStore
	dispatcher EventDispatcher
}

func (s *productService) CreateProduct(data model.NewProduct) (*model.Product, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	product := model.Product{
		ID:          uuid.New(),
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Quantity:    data.Quantity,
		Category:    data.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.products.Insert(product)

	_ = s.dispatcher.Dispatch(model.ProductCreated{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
	})

	return &product, nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, ok := s.products.Get(id)
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}

// SearchProducts filters by substring, category and price range, then always
// sorts newest-first by creation time before slicing the requested page.
func (s *productService) SearchProducts(q SearchProductsQuery) (*ProductPage, error) {
	all := s.products.All()

	filtered := all[:0:0]
	query := strings.ToLower(q.Query)
	for _, p := range all {
		if !matchesProductQuery(p, query, q) {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	page := paginateProducts(filtered, q.Page, q.PageSize)
	return &ProductPage{
		Products:   page,
		TotalCount: len(filtered),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

func matchesProductQuery(p model.Product, query string, q SearchProductsQuery) bool {
	if query != "" {
		matched := strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query)
		if !matched {
			return false
		}
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

func paginateProducts(products []model.Product, page, pageSize int) []model.Product {
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []model.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
