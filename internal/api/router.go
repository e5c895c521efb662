package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DokPlay/ShareIt/internal/booking"
	bookingHttp "github.com/DokPlay/ShareIt/internal/booking/http"
	"github.com/DokPlay/ShareIt/internal/identity"
	"github.com/DokPlay/ShareIt/internal/item"
	itemHttp "github.com/DokPlay/ShareIt/internal/item/http"
	"github.com/DokPlay/ShareIt/internal/itemrequest"
	itemrequestHttp "github.com/DokPlay/ShareIt/internal/itemrequest/http"
	"github.com/DokPlay/ShareIt/internal/user"
	userHttp "github.com/DokPlay/ShareIt/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService        user.Service
	ItemService        item.Service
	BookingService     booking.Service
	ItemRequestService itemrequest.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Identity) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	// identityMiddleware: Requires the gateway-provided sharer id header.
	identityMiddleware := identity.Required()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	itemRequestHandler := itemrequestHttp.NewHandler(cfg.ItemRequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
		itemrequestHttp.RegisterRoutes(root, itemRequestHandler, identityMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
