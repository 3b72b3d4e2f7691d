package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// Lookahead needs regexp2; the standard library RE2 engine has no (?=.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordRegex = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type SignupRequest struct {
	Name            string           `json:"name"`
	Password        string           `json:"password"`
	ConfirmPassword string           `json:"confirm_password"`
	Role            string           `json:"role"`
	ShopID          string           `json:"shop_id"`
	Phone           string           `json:"phone"`
	Position        string           `json:"position"`
	Salary          *decimal.Decimal `json:"salary"`
	JoinDate        string           `json:"join_date"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Role, validation.In("admin", "worker")),
		validation.Field(&req.ShopID, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.JoinDate, validation.Date("2006-01-02")),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordRegex.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
