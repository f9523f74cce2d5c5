package httpserver

import (
	"context"
	"net/http"

	"catalog-storefront/internal/checkout"
	cartsvc "catalog-storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID  string            `json:"productId"`
	VariantID  string            `json:"variantId"`
	Attributes map[string]string `json:"attributes"`
	Quantity   int               `json:"quantity"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		view, err := svc.AddItem(c.Request.Context(), sessionID(c), cartsvc.AddInput{
			ProductID:  req.ProductID,
			VariantID:  req.VariantID,
			Attributes: req.Attributes,
			Quantity:   req.Quantity,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.RemoveItem(c.Request.Context(), sessionID(c), c.Param("productId"), c.Query("variantId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func getToastHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Toast(sessionID(c)))
	}
}

func hideToastHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.HideToast(sessionID(c))
		c.Status(http.StatusNoContent)
	}
}

func checkoutPreviewHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		preview, err := svc.Checkout(c.Request.Context(), sessionID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, preview)
	}
}

// confirmCheckoutHandler returns the order link. The client opens it; the
// Location header carries it for clients that follow redirects themselves.
func confirmCheckoutHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opener := checkout.LinkOpenerFunc(func(_ context.Context, link string) error {
			c.Header("Location", link)
			return nil
		})
		link, err := svc.ConfirmCheckout(c.Request.Context(), sessionID(c), opener)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": link})
	}
}
