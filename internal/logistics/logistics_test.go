package logistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleFor(t *testing.T) {
	cases := []struct {
		qty  int
		want Vehicle
	}{
		{1, Tractor}, {500, Tractor}, {501, SmallTruck}, {2000, SmallTruck},
		{2001, MediumTruck}, {5000, MediumTruck}, {5001, LargeTruck},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, VehicleFor(tc.qty), "qty %d", tc.qty)
	}
	assert.Equal(t, 8.5, SmallTruck.RatePerKm())
}

func TestHaversine(t *testing.T) {
	// Delhi to Jaipur is roughly 240 km as the crow flies.
	assert.InDelta(t, 240, Haversine(cities["delhi"], cities["jaipur"]), 10)
	assert.Equal(t, 0.0, Haversine(cities["kota"], cities["kota"]))
}

func TestEstimateInHubCity(t *testing.T) {
	e := EstimateFor("Jaipur, Rajasthan", 100)

	assert.True(t, e.Known)
	assert.Equal(t, "jaipur", e.Hub)
	assert.Equal(t, 10.0, e.DistanceKm)
	// 10/35 = 0.2857; + 1.5 + 0.0857 = 1.87
	assert.Equal(t, 1.9, e.Hours)
	assert.Equal(t, Tractor, e.Vehicle)
}

func TestEstimateCapsDistance(t *testing.T) {
	e := EstimateFor("Udaipur, Rajasthan", 1500)

	assert.True(t, e.Known)
	assert.Equal(t, 50.0, e.DistanceKm)
	// 50/35 = 1.4286; *1.3 + 1.5 = 3.357
	assert.Equal(t, 3.4, e.Hours)
	assert.Equal(t, SmallTruck, e.Vehicle)
}

func TestEstimateUnknownCity(t *testing.T) {
	e := EstimateFor("Nowhere", 100)
	assert.False(t, e.Known)
	assert.Equal(t, "delhi", e.City)
	assert.Equal(t, "delhi", e.Hub)
}

func TestCityOf(t *testing.T) {
	assert.Equal(t, "jaipur", CityOf(" Jaipur , Rajasthan"))
	assert.Equal(t, "Jaipur", TitleCase("jaipur"))
}
