package chargers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNearbyCacheRoundTrip(t *testing.T) {
	cache := NewNearbyCache(time.Minute)
	defer cache.Stop()

	q := NearbyQuery{Latitude: 52.52, Longitude: 13.405, RadiusKM: 5, Limit: 50}
	key := cache.Key(q)

	_, ok := cache.Get(key)
	assert.False(t, ok)

	results := []NearbyCharger{{Charger: Charger{ID: uuid.New()}, DistanceKM: 1.2}}
	cache.Set(key, results)

	got, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, results, got)
	assert.Equal(t, 1, cache.Size())

	cache.Clear()
	_, ok = cache.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}

func TestNearbyCacheExpiry(t *testing.T) {
	cache := NewNearbyCache(-time.Second) // entries are born expired
	defer cache.Stop()

	key := cache.Key(NearbyQuery{Latitude: 1, Longitude: 2, RadiusKM: 3, Limit: 10})
	cache.Set(key, []NearbyCharger{})

	_, ok := cache.Get(key)
	assert.False(t, ok)
}

func TestNearbyCacheKeyBucketsCoordinates(t *testing.T) {
	cache := NewNearbyCache(time.Minute)
	defer cache.Stop()

	a := cache.Key(NearbyQuery{Latitude: 52.520001, Longitude: 13.405001, RadiusKM: 5, Limit: 50})
	b := cache.Key(NearbyQuery{Latitude: 52.520004, Longitude: 13.405004, RadiusKM: 5, Limit: 50})
	c := cache.Key(NearbyQuery{Latitude: 52.63, Longitude: 13.405, RadiusKM: 5, Limit: 50})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
