package httpserver

import (
	"errors"
	"net/http"

	"catalog-storefront/internal/checkout"
	"catalog-storefront/internal/domain"
	cartsvc "catalog-storefront/internal/service/cart"
	"catalog-storefront/internal/service/scanauth"
	stocksvc "catalog-storefront/internal/service/stock"
	"github.com/gin-gonic/gin"
)

// errorStatus maps service errors to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cartsvc.ErrVariantRequired),
		errors.Is(err, cartsvc.ErrVariantNotFound),
		errors.Is(err, stocksvc.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, checkout.ErrCheckoutDisabled),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, scanauth.ErrInvalidPassword),
		errors.Is(err, scanauth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, scanauth.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
