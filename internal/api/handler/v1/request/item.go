package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

func (req *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Category, validation.Length(0, 50)),
		validation.Field(&req.Unit, validation.Length(0, 20)),
	)
}

type UpdateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

func (req *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Category, validation.Length(0, 50)),
		validation.Field(&req.Unit, validation.Length(0, 20)),
	)
}
