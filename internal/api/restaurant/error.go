package restaurants

import (
	"RestoBook/pkg/response"
	"net/http"
)

var (
	ErrRestaurantNotFound = response.NewError(http.StatusNotFound, "restaurant not found")
	ErrInvalidDate        = response.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
)
