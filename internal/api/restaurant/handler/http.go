package restaurantHandler

import (
	restaurantService "RestoBook/internal/api/restaurant/service"
	"RestoBook/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RestaurantHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	restaurantService restaurantService.IRestaurantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	rs restaurantService.IRestaurantService,
) *RestaurantHandler {
	return &RestaurantHandler{
		log:               log,
		validator:         validate,
		middleware:        middleware,
		restaurantService: rs,
	}
}

func (h *RestaurantHandler) Start(srv fiber.Router) {
	restaurants := srv.Group("/restaurants")

	// Public browse endpoints (no auth required)
	restaurants.Get("", h.ListRestaurants)
	restaurants.Get("/:id", h.GetRestaurantByID)
	restaurants.Get("/:id/menu", h.GetMenu)
	restaurants.Get("/:id/time-slots", h.GetTimeSlots)
}
