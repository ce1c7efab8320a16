package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/dto"
)

// retryMessage is shown for failures whose details are not the caller's business
const retryMessage = "Temporary failure, please retry"

// ErrorHandler recovers from panics and renders the last error a handler attached with c.Error
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetString(RequestIDKey),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := Render(err)
		if status >= http.StatusInternalServerError {
			fields := domainerr.LogFields(err)
			fields["path"] = c.Request.URL.Path
			fields["request_id"] = c.GetString(RequestIDKey)
			logger.Error("Request failed", fields)
		}
		c.JSON(status, body)
	}
}

// StatusCode maps a domain error onto its HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrInsufficientBalance),
		errors.Is(err, domainerr.ErrBelowMinimumWithdrawal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrAccountNotFound),
		errors.Is(err, domainerr.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicatePayment):
		return http.StatusOK
	case errors.Is(err, domainerr.ErrInvalidStatusTransition),
		errors.Is(err, domainerr.ErrConcurrentUpdate),
		errors.Is(err, domainerr.ErrDuplicateAccount),
		errors.Is(err, domainerr.ErrConstraintViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Render builds the status and body for err. Shortfall and minimum errors carry
// their exact numbers; store and internal failures get a generic retry message.
func Render(err error) (int, dto.ErrorResponse) {
	body := dto.ErrorResponse{Code: domainerr.ErrorCode(err), Message: retryMessage}
	if domainerr.IsBusinessError(err) {
		body.Message = err.Error()
	}

	var shortfall *domainerr.InsufficientBalanceError
	var minimum *domainerr.BelowMinimumError
	switch {
	case errors.As(err, &shortfall):
		body.Details = map[string]any{
			"required":  shortfall.Required,
			"available": shortfall.Available,
			"shortfall": shortfall.Shortfall(),
		}
	case errors.As(err, &minimum):
		body.Details = map[string]any{
			"requested": minimum.Requested,
			"minimum":   minimum.Minimum,
			"missing":   minimum.Missing(),
		}
	}
	return StatusCode(err), body
}
