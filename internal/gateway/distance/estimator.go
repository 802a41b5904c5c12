package distance

import (
	"context"

	"route-engine/internal/entities"
	"route-engine/internal/pkg/geo"
)

// DefaultRoadFactor поправка на то, что по дорогам длиннее, чем по прямой.
const DefaultRoadFactor = 1.3

// Estimator оценка расстояния по большому кругу с дорожным коэффициентом.
type Estimator struct {
	roadFactor float64
}

func NewEstimator(roadFactor float64) *Estimator {
	if roadFactor < 1 {
		roadFactor = DefaultRoadFactor
	}
	return &Estimator{roadFactor: roadFactor}
}

func (e *Estimator) Distance(ctx context.Context, a, b entities.Location) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return geo.Haversine(a, b) * e.roadFactor, nil
}
