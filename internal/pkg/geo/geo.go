package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"route-engine/internal/entities"
)

const (
	earthRadiusMiles = 3958.8
	milesPerDegLat   = 69.0

	// DefaultCellPrecision ячейка ~4.9x4.9 км.
	DefaultCellPrecision = 5
)

// Haversine расстояние по большому кругу в милях.
func Haversine(a, b entities.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

func Cell(loc entities.Location, precision uint) string {
	return geohash.EncodeWithPrecision(loc.Lat, loc.Lon, precision)
}

// CellCenter центр ячейки, используется как депо маршрута.
func CellCenter(cell string) entities.Location {
	lat, lon := geohash.DecodeCenter(cell)
	return entities.Location{Lat: lat, Lon: lon, Address: "cell " + cell}
}

// CellNeighbors соседние ячейки.
func CellNeighbors(cell string) []string {
	return geohash.Neighbors(cell)
}

// degreesFor грубая оценка радиуса в градусах по широте и долготе.
func degreesFor(lat, miles float64) (dLat, dLon float64) {
	dLat = miles / milesPerDegLat
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	dLon = miles / (milesPerDegLat * cos)
	return dLat, dLon
}
