package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	Quantity    int
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewProduct struct {
	Name        string
	Description string
	Price       int64
	Quantity    int
	Category    string
}
