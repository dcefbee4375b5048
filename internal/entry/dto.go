package entry

import (
	"errors"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// AddEntryDTO carries the fields of a new ledger entry. The store accepts it
// as is; Validate is for callers that collect input from a user.
type AddEntryDTO struct {
	Amount      decimal.Decimal
	CategoryID  int64  `validate:"required,gt=0"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Description string `validate:"max=500"`
	ReceiptPath *string
}

func (dto AddEntryDTO) Validate() error {
	if err := ValidateAmount(dto.Amount); err != nil {
		return err
	}
	if err := validate.Struct(dto); err != nil {
		return toAppError(err)
	}
	return nil
}

// ValidateAmount requires a strictly positive amount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return internal.NewValidationFieldError("amount", "amount must be greater than zero", internal.ErrCodeInvalidAmount)
	}
	return nil
}

// ValidateDate requires a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if err := validate.Var(date, "required,datetime=2006-01-02"); err != nil {
		return internal.NewValidationFieldError("date", "date must be a calendar date in YYYY-MM-DD form", internal.ErrCodeInvalidDate)
	}
	return nil
}

func toAppError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return internal.NewValidationError("invalid entry", internal.ErrCodeValidationFailed).WithCause(err)
	}

	details := internal.ValidationErrors{}
	for _, fe := range fieldErrs {
		details.Errors = append(details.Errors, fieldMessage(fe))
	}
	return internal.NewValidationError("invalid entry", internal.ErrCodeValidationFailed).WithDetails(details)
}

func fieldMessage(fe validator.FieldError) internal.ValidationError {
	switch fe.Field() {
	case "Date":
		return internal.ValidationError{Field: "date", Message: "date must be a calendar date in YYYY-MM-DD form", Code: string(internal.ErrCodeInvalidDate)}
	case "CategoryID":
		return internal.ValidationError{Field: "category_id", Message: "category is required", Code: string(internal.ErrCodeInvalidCategory)}
	case "Description":
		return internal.ValidationError{Field: "description", Message: "description must be at most 500 characters", Code: string(internal.ErrCodeValidationFailed)}
	}
	return internal.ValidationError{Field: fe.Field(), Message: fe.Error(), Code: string(internal.ErrCodeValidationFailed)}
}
