// Package seed loads optional startup fixtures from a JSON file.
package seed

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
)

type seedFile struct {
	Users []struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	} `json:"users"`
	Products []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		Quantity    int    `json:"quantity"`
		Category    string `json:"category"`
	} `json:"products"`
}

// Load reads the seed file and creates every listed entity through the
// service layer, so seeded entities get real IDs and timestamps.
func Load(path string, users service.UserService, products service.ProductService) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, errors.Wrap(err, "parse seed file")
	}

	count := 0
	for _, u := range data.Users {
		if _, err := users.CreateUser(model.NewUser{
			Username: u.Username,
			Email:    u.Email,
			FullName: u.FullName,
		}); err != nil {
			return count, errors.Wrapf(err, "seed user %q", u.Username)
		}
		count++
	}
	for _, p := range data.Products {
		if _, err := products.CreateProduct(model.NewProduct{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    p.Category,
		}); err != nil {
			return count, errors.Wrapf(err, "seed product %q", p.Name)
		}
		count++
	}
	return count, nil
}
