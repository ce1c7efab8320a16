package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainerr "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		code    int
		message string
	}{
		{"InvalidAmount", domainerr.ErrInvalidAmount, http.StatusBadRequest, 4002, "invalid coin amount"},
		{"Shortfall", domainerr.NewInsufficientBalanceError("viewer-1", 60, 40), http.StatusUnprocessableEntity, 4001, ""},
		{"BelowMinimum", domainerr.NewBelowMinimumError(1999, 2000), http.StatusUnprocessableEntity, 4007, ""},
		{"AccountNotFound", domainerr.ErrAccountNotFound, http.StatusNotFound, 4040, "account not found"},
		{"EntryNotFound", domainerr.ErrEntryNotFound, http.StatusNotFound, 4041, "ledger entry not found"},
		{"DuplicatePayment", domainerr.NewDuplicatePaymentError("pay-1", "e-1"), http.StatusOK, 4004, ""},
		{"StatusTransition", domainerr.ErrInvalidStatusTransition, http.StatusConflict, 4009, "invalid status transition"},
		{"ConcurrentUpdate", domainerr.ErrConcurrentUpdate, http.StatusConflict, 4230, retryMessage},
		{"UnknownType", domainerr.ErrUnknownTransactionType, http.StatusInternalServerError, 5001, retryMessage},
		{"Store", fmt.Errorf("query: %w", domainerr.ErrDatabaseConnection), http.StatusInternalServerError, 5003, retryMessage},
		{"Unclassified", errors.New("boom"), http.StatusInternalServerError, 5000, retryMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := Render(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}

	t.Run("shortfall details", func(t *testing.T) {
		_, body := Render(domainerr.NewInsufficientBalanceError("viewer-1", 60, 40))
		assert.Equal(t, map[string]any{"required": int64(60), "available": int64(40), "shortfall": int64(20)}, body.Details)
	})
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler(logger.NewNoopLogger()))
	router.GET("/panic", func(*gin.Context) { panic("unexpected") })
	router.GET("/fail", func(c *gin.Context) { _ = c.Error(domainerr.ErrEntryNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
