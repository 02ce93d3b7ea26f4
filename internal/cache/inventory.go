package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	popularCitiesKeyPrefix = "cities:popular:%d"
	citySearchKeyPrefix    = "cities:search:%s:%d"
	publicTripKeyPrefix    = "trip:public:%d"
)

// TTLs are short: the city catalog is read-mostly and public trips change
// only on owner mutation (which invalidates).
const (
	PopularCitiesTTL = 10 * time.Minute
	CitySearchTTL    = 5 * time.Minute
	PublicTripTTL    = 2 * time.Minute
)

func PopularCitiesKey(limit int) string {
	return fmt.Sprintf(popularCitiesKeyPrefix, limit)
}

func CitySearchKey(query string, limit int) string {
	return fmt.Sprintf(citySearchKeyPrefix, query, limit)
}

func PublicTripKey(tripID uint) string {
	return fmt.Sprintf(publicTripKeyPrefix, tripID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePublicTrip(ctx context.Context, tripID uint) {
	Invalidate(ctx, PublicTripKey(tripID))
}
