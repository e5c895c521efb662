package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DokPlay/ShareIt/internal/api"
	"github.com/DokPlay/ShareIt/internal/booking"
	"github.com/DokPlay/ShareIt/internal/item"
	"github.com/DokPlay/ShareIt/internal/itemrequest"
	"github.com/DokPlay/ShareIt/internal/pkg/clock"
	"github.com/DokPlay/ShareIt/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Clock        clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo,
		&itemCatalog{items: itemRepo},
		&userDirectory{users: userRepo},
		clk,
	)

	// Item Module
	itemService := item.NewService(itemRepo, userRepo, bookingRepo, clk)

	// Item Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		ItemService:        itemService,
		BookingService:     bookingService,
		ItemRequestService: requestService,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router: router,
	}
}
