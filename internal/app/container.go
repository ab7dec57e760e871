package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shareloop/shareloop-backend/internal/api"
	"github.com/shareloop/shareloop-backend/internal/booking"
	"github.com/shareloop/shareloop-backend/internal/comment"
	"github.com/shareloop/shareloop-backend/internal/item"
	"github.com/shareloop/shareloop-backend/internal/itemrequest"
	"github.com/shareloop/shareloop-backend/internal/pkg/metrics"
	"github.com/shareloop/shareloop-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	RateLimitRPS   int
	RateLimitBurst int
	DBPool         *pgxpool.Pool
	Logger         zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router  *gin.Engine
	Metrics *metrics.Metrics
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	m := metrics.New()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, cfg.Logger)

	// Comment store, consumed by the item module.
	commentRepo := comment.NewPgxRepository(cfg.DBPool)

	// Booking store and the projector the item module reads last/next
	// bookings through. The booking service itself is built after the item
	// service it depends on.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	projector := booking.NewProjector(bookingRepo)

	// Item Request Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService, itemRepo, cfg.Logger)

	// Item Module
	itemService := item.NewService(itemRepo, userService, commentRepo, projector, requestService, cfg.Logger)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, userService, itemService, cfg.Logger, m)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Metrics:        m,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{
		Router:  router,
		Metrics: m,
	}
}
