package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
)

type sampleRequest struct {
	UserID      string `validate:"required,max=8"`
	ContentType string `validate:"omitempty,oneof=video series"`
}

func TestValidator_Amount(t *testing.T) {
	v := NewValidator(1000)

	testCases := []struct {
		name   string
		amount int64
		valid  bool
	}{
		{"zero", 0, false},
		{"negative", -1, false},
		{"one", 1, true},
		{"maximum", 1000, true},
		{"above maximum", 1001, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Amount(tc.amount)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			}
		})
	}
}

func TestValidator_DefaultMaximum(t *testing.T) {
	v := NewValidator(0)

	assert.Equal(t, DefaultMaxCoinAmount, v.MaxCoinAmount())
	assert.NoError(t, v.Amount(DefaultMaxCoinAmount))
	assert.ErrorIs(t, v.Amount(DefaultMaxCoinAmount+1), errs.ErrInvalidAmount)
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator(1000)

	assert.NoError(t, v.Struct(sampleRequest{UserID: "u1"}))
	assert.NoError(t, v.Struct(sampleRequest{UserID: "u1", ContentType: "video"}))

	err := v.Struct(sampleRequest{})
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "UserID failed on 'required'")

	err = v.Struct(sampleRequest{UserID: "u1", ContentType: "podcast"})
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "ContentType failed on 'oneof'")
}
