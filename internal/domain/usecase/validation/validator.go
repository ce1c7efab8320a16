package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
)

// DefaultMaxCoinAmount bounds a single entry when no limit is configured
const DefaultMaxCoinAmount int64 = 10_000_000

// Validator checks request structs and coin amounts
type Validator struct {
	validate      *validator.Validate
	maxCoinAmount int64
}

// NewValidator creates a validator rejecting amounts above maxCoinAmount
func NewValidator(maxCoinAmount int64) *Validator {
	if maxCoinAmount <= 0 {
		maxCoinAmount = DefaultMaxCoinAmount
	}
	return &Validator{
		validate:      validator.New(),
		maxCoinAmount: maxCoinAmount,
	}
}

// MaxCoinAmount returns the upper bound for a single entry
func (v *Validator) MaxCoinAmount() int64 {
	return v.maxCoinAmount
}

// Amount rejects non-positive and out-of-range coin amounts
func (v *Validator) Amount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", errs.ErrInvalidAmount, amount)
	}
	if amount > v.maxCoinAmount {
		return fmt.Errorf("%w: %d exceeds the maximum of %d", errs.ErrInvalidAmount, amount, v.maxCoinAmount)
	}
	return nil
}

// Struct validates tagged request fields and reports the failing ones
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err.Error())
	}

	details := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalidRequest, strings.Join(details, ", "))
}
