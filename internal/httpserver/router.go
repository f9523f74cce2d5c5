package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"catalog-storefront/internal/checkout"
	"catalog-storefront/internal/domain"
	"catalog-storefront/internal/notify"
	cartsvc "catalog-storefront/internal/service/cart"
	stocksvc "catalog-storefront/internal/service/stock"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type productService interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, q string, limit int) ([]domain.Product, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*cartsvc.View, error)
	AddItem(ctx context.Context, sessionID string, in cartsvc.AddInput) (*cartsvc.View, error)
	RemoveItem(ctx context.Context, sessionID, productID, variantID string) (*cartsvc.View, error)
	Clear(ctx context.Context, sessionID string) (*cartsvc.View, error)
	Toast(sessionID string) notify.Toast
	HideToast(sessionID string)
	Checkout(ctx context.Context, sessionID string) (checkout.Preview, error)
	ConfirmCheckout(ctx context.Context, sessionID string, opener checkout.LinkOpener) (string, error)
}

type stockService interface {
	Move(ctx context.Context, in stocksvc.MoveInput) (*domain.StockMove, error)
}

type scanAuth interface {
	Login(password string) (string, error)
	Validate(token string) error
	Logout(token string)
	TTLSeconds() int
}

// Deps are the services behind the routes. Ready lists the backends checked
// by /readyz.
type Deps struct {
	ProductSvc  productService
	CategorySvc categoryService
	CartSvc     cartService
	StockSvc    stockService
	ScanAuth    scanAuth
	Ready       map[string]Pinger
	CORSOrigins []string
	// SecureCookies marks session cookies Secure.
	SecureCookies bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.CategorySvc == nil || deps.CartSvc == nil {
		return nil, errors.New("httpserver: catalog and cart services are required")
	}
	if deps.StockSvc == nil || deps.ScanAuth == nil {
		return nil, errors.New("httpserver: stock and scan auth services are required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))
	router.GET("/categories", listCategoriesHandler(deps.CategorySvc))

	cartGroup := router.Group("/cart")
	cartGroup.Use(sessionMiddleware(deps.SecureCookies))
	cartGroup.GET("", getCartHandler(deps.CartSvc))
	cartGroup.POST("/items", addCartItemHandler(deps.CartSvc))
	cartGroup.DELETE("/items/:productId", removeCartItemHandler(deps.CartSvc))
	cartGroup.DELETE("", clearCartHandler(deps.CartSvc))
	cartGroup.GET("/toast", getToastHandler(deps.CartSvc))
	cartGroup.DELETE("/toast", hideToastHandler(deps.CartSvc))
	cartGroup.GET("/checkout", checkoutPreviewHandler(deps.CartSvc))
	cartGroup.POST("/checkout", confirmCheckoutHandler(deps.CartSvc))

	api := router.Group("/api")
	api.POST("/scan-auth", scanLoginHandler(deps.ScanAuth, deps.SecureCookies))
	api.POST("/scan-logout", scanLogoutHandler(deps.ScanAuth, deps.SecureCookies))

	scan := api.Group("")
	scan.Use(scanAuthMiddleware(deps.ScanAuth))
	scan.POST("/stock-move", stockMoveHandler(deps.StockSvc))
	scan.GET("/product-search", productSearchHandler(deps.ProductSvc))

	return router, nil
}
