package rpc

import (
	"time"

	"shopapi/pkg/domain/model"
	"shopapi/transport/rpc/pb"
)

func wireTime(t time.Time) string {
	return t.UTC().Format(model.TimestampLayout)
}

// optStr treats an empty proto3 string as an absent field.
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toPBUser(u *model.User) *pb.User {
	return &pb.User{
		Id:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: wireTime(u.CreatedAt),
		UpdatedAt: wireTime(u.UpdatedAt),
		IsActive:  u.IsActive,
	}
}

func toPBProduct(p *model.Product) *pb.Product {
	return &pb.Product{
		Id:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    int32(p.Quantity),
		Category:    p.Category,
		CreatedAt:   wireTime(p.CreatedAt),
		UpdatedAt:   wireTime(p.UpdatedAt),
	}
}
