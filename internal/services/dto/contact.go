package dto

import (
	"time"

	"contacts_backend/internal/models"
)

type ContactCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=20"`
	Lastname    string `json:"lastname" validate:"required,min=2,max=20"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=5,max=20"`
	Birthday    *Date  `json:"birthday"`
	Age         int    `json:"age" validate:"gte=0"`
	Description string `json:"description"`
}

// ContactPatch is a sparse patch: only fields present in the request body
// are applied, everything else is left untouched. Birthday is tri-state so
// an explicit null clears the stored date.
type ContactPatch struct {
	Name        *string        `json:"name" validate:"omitempty,min=2,max=20"`
	Lastname    *string        `json:"lastname" validate:"omitempty,min=2,max=20"`
	Email       *string        `json:"email" validate:"omitempty,email"`
	Phone       *string        `json:"phone" validate:"omitempty,min=5,max=20"`
	Birthday    Optional[Date] `json:"birthday"`
	Age         *int           `json:"age" validate:"omitempty,gte=0"`
	Description *string        `json:"description"`
}

type ContactResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Lastname    string     `json:"lastname"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Birthday    *Date      `json:"birthday"`
	Age         int        `json:"age"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewContactResponse(c *models.Contact) ContactResponse {
	resp := ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Lastname:    c.Lastname,
		Email:       c.Email,
		Phone:       c.Phone,
		Age:         c.Age,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Birthday != nil {
		resp.Birthday = &Date{Time: *c.Birthday}
	}
	return resp
}

func NewContactResponseList(contacts []models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}
