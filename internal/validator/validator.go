package validator

import (
	"fmt"
	"regexp"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
)

// Seat codes look like "A12": a row letter block followed by a seat number.
var seatCodeRgx = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,3}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_code", validateSeatCode)
	validator.RegisterValidation("ticket_type", validateTicketType)

	return validator
}

func validateSeatCode(fl validator.FieldLevel) bool {
	return seatCodeRgx.MatchString(fl.Field().String())
}

func validateTicketType(fl validator.FieldLevel) bool {
	ticketType := domain.TicketType(fl.Field().String())

	return ticketType == domain.TicketTypeAdult || ticketType == domain.TicketTypeChild
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "unique":
		return "must not contain duplicates"
	case "seat_code":
		return "must be a valid seat code such as A12"
	case "ticket_type":
		return "must be either adult or child"
	default:
		return "is invalid"
	}
}
