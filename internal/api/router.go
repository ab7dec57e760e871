package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shareloop/shareloop-backend/internal/booking"
	bookingHttp "github.com/shareloop/shareloop-backend/internal/booking/http"
	"github.com/shareloop/shareloop-backend/internal/identity"
	"github.com/shareloop/shareloop-backend/internal/item"
	itemHttp "github.com/shareloop/shareloop-backend/internal/item/http"
	"github.com/shareloop/shareloop-backend/internal/itemrequest"
	requestHttp "github.com/shareloop/shareloop-backend/internal/itemrequest/http"
	"github.com/shareloop/shareloop-backend/internal/pkg/metrics"
	"github.com/shareloop/shareloop-backend/internal/user"
	userHttp "github.com/shareloop/shareloop-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	// ProdOrigins is a comma-separated list of allowed CORS origins in
	// production. In development all localhost origins are allowed.
	ProdOrigins string

	RateLimitRPS   int
	RateLimitBurst int

	Metrics *metrics.Metrics

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles the middleware chain (CORS, Logger, request ids, metrics,
// rate limiting) and registers routes for the modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(RequestID())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost")
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Sharer-User-Id"}
	r.Use(cors.New(corsConfig))

	if cfg.Metrics != nil {
		r.Use(ObserveRequests(cfg.Metrics))
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// identityMiddleware: Resolves the acting user id from the request header.
	identityMiddleware := identity.Required()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, identityMiddleware)
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
