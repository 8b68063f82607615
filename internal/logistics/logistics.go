// Package logistics estimates pickup logistics for a bid: which vehicle the
// quantity needs, how far the farm is from the nearest market hub and how
// long the trip takes.
package logistics

import (
	"math"
	"sort"
	"strings"
)

// Vehicle classes by payload.
type Vehicle string

const (
	Tractor     Vehicle = "Tractor"
	SmallTruck  Vehicle = "Small Truck"
	MediumTruck Vehicle = "Medium Truck"
	LargeTruck  Vehicle = "Large Truck"
)

// VehicleFor picks the smallest vehicle that carries quantity kg.
func VehicleFor(quantity int) Vehicle {
	switch {
	case quantity <= 500:
		return Tractor
	case quantity <= 2000:
		return SmallTruck
	case quantity <= 5000:
		return MediumTruck
	default:
		return LargeTruck
	}
}

// RatePerKm is the indicative hire rate in rupees per kilometre.
func (v Vehicle) RatePerKm() float64 {
	switch v {
	case Tractor:
		return 6
	case SmallTruck:
		return 8.5
	case MediumTruck:
		return 12
	default:
		return 15.5
	}
}

const (
	earthRadiusKm = 6371.0
	maxDistanceKm = 50.0
	// Distance assumed when the farm is in a hub city itself.
	inCityKm = 10.0
	// Added to the hub-to-hub distance for the last leg from the farm.
	lastMileKm   = 15.0
	avgSpeedKmph = 35.0
	loadingHours = 1.5
	bufferShare  = 0.3
)

// Coord is a latitude/longitude pair in degrees.
type Coord struct {
	Lat, Lon float64
}

var cities = map[string]Coord{
	"delhi":     {28.6139, 77.2090},
	"mumbai":    {19.0760, 72.8777},
	"bangalore": {12.9716, 77.5946},
	"chennai":   {13.0827, 80.2707},
	"kolkata":   {22.5726, 88.3639},
	"hyderabad": {17.3850, 78.4867},
	"pune":      {18.5204, 73.8567},
	"ahmedabad": {23.0225, 72.5714},
	"jaipur":    {26.9124, 75.7873},
	"lucknow":   {26.8467, 80.9462},
	"kanpur":    {26.4499, 80.3319},
	"nagpur":    {21.1458, 79.0882},
	"indore":    {22.7196, 75.8577},
	"bhopal":    {23.2599, 77.4126},
	"ludhiana":  {30.9010, 75.8573},
	"agra":      {27.1767, 78.0081},
	"nashik":    {19.9975, 73.7898},
	"udaipur":   {24.5854, 73.7125},
	"jodhpur":   {26.2389, 73.0243},
	"kota":      {25.2138, 75.8648},
	"bikaner":   {28.0229, 73.3119},
	"ajmer":     {26.4499, 74.6399},
	"alwar":     {27.5530, 76.6346},
	"bharatpur": {27.2152, 77.4890},
}

// hubs are the wholesale market cities.
var hubs = []string{"delhi", "mumbai", "bangalore", "chennai", "kolkata", "hyderabad", "jaipur", "ahmedabad"}

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b Coord) float64 {
	lat1, lat2 := a.Lat*math.Pi/180, b.Lat*math.Pi/180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Estimate is a pickup plan for one bid.
type Estimate struct {
	City       string
	Hub        string
	Known      bool
	Vehicle    Vehicle
	DistanceKm float64
	Hours      float64
}

// CityOf extracts the city from a "City, State" location.
func CityOf(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return strings.ToLower(strings.TrimSpace(city))
}

// EstimateFor plans pickup of quantity kg from a "City, State" location.
// Unknown cities are treated as Delhi and reported with Known=false.
func EstimateFor(location string, quantity int) Estimate {
	city := CityOf(location)
	coord, known := cities[city]
	if !known {
		city, coord = "delhi", cities["delhi"]
	}

	hub, dist := nearestHub(city, coord)
	if hub == city {
		dist = inCityKm
	} else {
		dist += lastMileKm
	}
	dist = math.Min(dist, maxDistanceKm)

	travel := dist / avgSpeedKmph
	hours := travel + loadingHours + travel*bufferShare

	return Estimate{
		City:       city,
		Hub:        hub,
		Known:      known,
		Vehicle:    VehicleFor(quantity),
		DistanceKm: math.Round(dist*10) / 10,
		Hours:      math.Round(hours*10) / 10,
	}
}

func nearestHub(city string, c Coord) (string, float64) {
	type cand struct {
		name string
		km   float64
	}
	cands := make([]cand, 0, len(hubs))
	for _, h := range hubs {
		if h == city {
			return h, 0
		}
		cands = append(cands, cand{h, Haversine(c, cities[h])})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].km < cands[j].km })
	return cands[0].name, cands[0].km
}

// TitleCase capitalises a lower-case city name for display.
func TitleCase(city string) string {
	if city == "" {
		return city
	}
	return strings.ToUpper(city[:1]) + city[1:]
}
