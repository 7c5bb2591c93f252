package validate

var (
	fieldProductName = field{json: "name", proto: "name"}
	fieldDesc        = field{json: "description", proto: "description"}
	fieldPrice       = field{json: "price", proto: "price"}
	fieldQuantity    = field{json: "quantity", proto: "quantity"}
	fieldCategory    = field{json: "category", proto: "category"}
	fieldQuery       = field{json: "query", proto: "query"}
	fieldMinPrice    = field{json: "minPrice", proto: "min_price"}
	fieldMaxPrice    = field{json: "maxPrice", proto: "max_price"}
)

const (
	maxPrice    = 99_999_999
	maxQuantity = 99_999
)

type CreateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Quantity    *int64
	Category    *string
}

func CreateProduct(in CreateProductInput, st Style) Violations {
	c := &collector{st: st}
	if v, ok := c.requireString(fieldProductName, in.Name); ok {
		c.strLen(fieldProductName, v, 0, 100)
	}
	if v, ok := c.requireString(fieldDesc, in.Description); ok {
		c.strLen(fieldDesc, v, 0, 500)
	}
	if in.Price == nil {
		c.add(fieldPrice, "is required")
	} else {
		c.intRange(fieldPrice, *in.Price, 0, maxPrice,
			"cannot be negative", "cannot exceed 99,999,999")
	}
	if in.Quantity == nil {
		c.add(fieldQuantity, "is required")
	} else {
		c.intRange(fieldQuantity, *in.Quantity, 0, maxQuantity,
			"cannot be negative", "cannot exceed 99,999")
	}
	if v, ok := c.requireString(fieldCategory, in.Category); ok {
		c.strLen(fieldCategory, v, 0, 50)
	}
	return c.out
}

type SearchProductsInput struct {
	Query    *string
	Category *string
	MinPrice *int64
	MaxPrice *int64
	Page     *int64
	PageSize *int64
}

func SearchProducts(in SearchProductsInput, st Style) Violations {
	c := &collector{st: st}
	if in.Query != nil {
		c.strLen(fieldQuery, *in.Query, 0, 100)
	}
	if in.Category != nil {
		c.strLen(fieldCategory, *in.Category, 0, 50)
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		c.add(fieldMinPrice, "cannot be negative")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		c.add(fieldMaxPrice, "cannot be negative")
	}
	c.pagination(in.Page, in.PageSize)
	return c.out
}
