package restaurantService

import (
	restaurants "RestoBook/internal/api/restaurant"
	restaurantRepository "RestoBook/internal/api/restaurant/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IRestaurantService interface {
	ListRestaurants(ctx context.Context, q restaurants.ListRestaurantsQuery) (*restaurants.RestaurantListResponse, error)
	GetRestaurantByID(ctx context.Context, id string) (*restaurants.RestaurantResponse, error)
	GetMenu(ctx context.Context, restaurantID, category string) (*restaurants.MenuResponse, error)
	GetTimeSlots(ctx context.Context, restaurantID, date string) (*restaurants.TimeSlotsResponse, error)
}

type restaurantService struct {
	log            *logrus.Logger
	restaurantRepo restaurantRepository.Repository
}

func New(log *logrus.Logger, restaurantRepo restaurantRepository.Repository) IRestaurantService {
	return &restaurantService{
		log:            log,
		restaurantRepo: restaurantRepo,
	}
}
