package domain

import (
	"errors"
	"math"

	"github.com/Samod99/NourishFoods-sub000/internal/geo"
)

type Vendor struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Location           geo.Point `json:"location"`
	Address            string    `json:"address"`
	Open               bool      `json:"open"`
	AvgDeliveryMinutes int       `json:"avgDeliveryMinutes"`
	Rating             float64   `json:"rating"`
	RatingCount        int       `json:"ratingCount"`
}

func (v Vendor) Validate() error {
	if v.ID == "" {
		return errors.New("vendor id required")
	}
	if v.Rating < 0 || v.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}

// AddRating folds one review value into the aggregate.
func (v *Vendor) AddRating(value float64) {
	total := v.Rating*float64(v.RatingCount) + value
	v.RatingCount++
	v.Rating = total / float64(v.RatingCount)
}

// EstimatedDeliveryMinutes combines the vendor's average preparation time
// with travel time to dest at courier speed.
func (v Vendor) EstimatedDeliveryMinutes(dest geo.Point, speedMetersPerSecond float64) int {
	if speedMetersPerSecond <= 0 {
		return v.AvgDeliveryMinutes
	}
	travel := geo.Distance(v.Location, dest) / speedMetersPerSecond / 60
	return v.AvgDeliveryMinutes + int(math.Ceil(travel))
}
