package routes

import (
	"github.com/Kariqs/agroxhub-api/controllers"
	"github.com/Kariqs/agroxhub-api/middlewares"
	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Checkout  *controllers.CheckoutController
	Order     *controllers.OrderController
	Payment   *controllers.PaymentController
	Logistics *controllers.LogisticsController
	Cart      *controllers.CartController
	Region    *controllers.RegionController
}

func Register(server *gin.Engine, jwtSecret string, c Controllers) {
	DefaultRoutes(server)
	RegionRoutes(server, c.Region)

	auth := middlewares.RequireAuth(jwtSecret)
	user := server.Group("/", auth, middlewares.RequireUser())
	CartRoutes(user, c.Cart)
	CheckoutRoutes(user, c.Checkout)
	OrderRoutes(user, c.Order)
	PaymentRoutes(user, c.Payment)

	logistics := server.Group("/logistics", auth, middlewares.RequireLogistics())
	LogisticsRoutes(logistics, c.Logistics)
}
