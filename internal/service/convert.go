package service

// Model-to-DTO mappers shared by the services. Timestamps cross the wire as
// UTC RFC 3339 strings.

import (
	"fmt"
	"time"

	"greenroots/internal/dto"
	"greenroots/internal/model"
	"greenroots/internal/repository"

	"github.com/google/uuid"
)

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func treeToResponse(t *model.Tree) dto.TreeResponse {
	return dto.TreeResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		ScientificName: t.ScientificName,
		Image:          t.Image,
		Category:       t.Category,
		CategorySlug:   t.CategorySlug,
		Description:    t.Description,
		CO2:            t.CO2,
		O2:             t.O2,
		Price:          t.Price,
		CreatedAt:      isoTime(t.CreatedAt),
		UpdatedAt:      isoTime(t.UpdatedAt),
	}
}

func forestToResponse(f *model.Forest) dto.ForestResponse {
	return dto.ForestResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		Association: f.Association,
		Image:       f.Image,
		Description: f.Description,
		Country:     f.Country,
		CountrySlug: f.CountrySlug,
		LocationX:   f.LocationX,
		LocationY:   f.LocationY,
		CreatedAt:   isoTime(f.CreatedAt),
		UpdatedAt:   isoTime(f.UpdatedAt),
	}
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Phone:     u.Phone,
		Address:   u.Address,
		Zipcode:   u.Zipcode,
		City:      u.City,
		Role:      u.Role,
	}
}

func orderToResponse(o *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         o.ID.String(),
		UserID:     o.UserID.String(),
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		CreatedAt:  isoTime(o.CreatedAt),
		UpdatedAt:  isoTime(o.UpdatedAt),
	}
}

func orderItemToResponse(i *model.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:       i.ID.String(),
		OrderID:  i.OrderID.String(),
		TreeID:   i.TreeID.String(),
		ForestID: i.ForestID.String(),
		Name:     i.Name,
		Quantity: i.Quantity,
		Price:    i.Price,
	}
}

// toAssignments parses the wire association list into the reconciler's input.
// The validator has already checked the uuid format; a parse failure here
// still returns an error rather than panicking.
func toAssignments(in []dto.StockAssignment) ([]repository.Assignment, error) {
	out := make([]repository.Assignment, 0, len(in))
	for _, a := range in {
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid association id %q: %w", a.ID, err)
		}
		out = append(out, repository.Assignment{CounterpartID: id, Stock: a.Stock})
	}
	return out, nil
}
