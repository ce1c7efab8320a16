package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
)

// fail hands err to the error middleware and stops the chain
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// badRequest reports a malformed body or query
func badRequest(c *gin.Context, err error) {
	fail(c, fmt.Errorf("%w: %s", domainerr.ErrInvalidRequest, err.Error()))
}
