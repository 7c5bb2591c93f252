package rpc

import (
	"context"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
	"shopapi/pkg/validate"
	"shopapi/transport/rpc/pb"
)

type ProductServer struct {
	pb.UnimplementedProductServiceServer
	products service.ProductService
}

func NewProductServer(products service.ProductService) *ProductServer {
	return &ProductServer{products: products}
}

func (s *ProductServer) GetProduct(ctx context.Context, req *pb.GetProductRequest) (*pb.GetProductResponse, error) {
	id, violations := validate.EntityID(req.GetId(), validate.ProtoNames)
	if len(violations) > 0 {
		return nil, invalidArgument("GetProduct", violations)
	}

	product, err := s.products.GetProduct(id)
	if err != nil {
		return nil, serviceError("GetProduct", err)
	}
	return &pb.GetProductResponse{Product: toPBProduct(product)}, nil
}

func (s *ProductServer) CreateProduct(ctx context.Context, req *pb.CreateProductRequest) (*pb.CreateProductResponse, error) {
	price := req.GetPrice()
	quantity := int64(req.GetQuantity())
	in := validate.CreateProductInput{
		Name:        optStr(req.GetName()),
		Description: optStr(req.GetDescription()),
		Price:       &price,
		Quantity:    &quantity,
		Category:    optStr(req.GetCategory()),
	}
	if violations := validate.CreateProduct(in, validate.ProtoNames); len(violations) > 0 {
		return nil, invalidArgument("CreateProduct", violations)
	}

	product, err := s.products.CreateProduct(model.NewProduct{
		Name:        req.GetName(),
		Description: req.GetDescription(),
		Price:       req.GetPrice(),
		Quantity:    int(req.GetQuantity()),
		Category:    req.GetCategory(),
	})
	if err != nil {
		return nil, serviceError("CreateProduct", err)
	}
	return &pb.CreateProductResponse{Product: toPBProduct(product)}, nil
}

func (s *ProductServer) SearchProducts(ctx context.Context, req *pb.SearchProductsRequest) (*pb.SearchProductsResponse, error) {
	// Zero price bounds mean the filter was not set; prices are validated
	// non-negative so a zero bound cannot be a meaningful filter.
	var minPrice, maxPrice *int64
	if v := req.GetMinPrice(); v != 0 {
		minPrice = &v
	}
	if v := req.GetMaxPrice(); v != 0 {
		maxPrice = &v
	}

	page := int64(req.GetPage())
	pageSize := int64(req.GetPageSize())
	in := validate.SearchProductsInput{
		Query:    optStr(req.GetQuery()),
		Category: optStr(req.GetCategory()),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     &page,
		PageSize: &pageSize,
	}
	if violations := validate.SearchProducts(in, validate.ProtoNames); len(violations) > 0 {
		return nil, invalidArgument("SearchProducts", violations)
	}

	result, err := s.products.SearchProducts(service.SearchProductsQuery{
		Query:    req.GetQuery(),
		Category: req.GetCategory(),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     int(req.GetPage()),
		PageSize: int(req.GetPageSize()),
	})
	if err != nil {
		return nil, serviceError("SearchProducts", err)
	}

	products := make([]*pb.Product, len(result.Products))
	for i := range result.Products {
		products[i] = toPBProduct(&result.Products[i])
	}
	return &pb.SearchProductsResponse{
		Products:   products,
		TotalCount: int32(result.TotalCount),
		Page:       int32(result.Page),
		PageSize:   int32(result.PageSize),
	}, nil
}
