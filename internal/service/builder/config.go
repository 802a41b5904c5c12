package builder

import "fmt"

type Config struct {
	// MaxStops вместимость маршрута, по два стопа на заказ
	MaxStops int
	// MaxOpenRoutes открытых для вставки маршрутов на окно и ячейку
	MaxOpenRoutes int
	RadiusMiles   float64
}

func DefaultConfig() Config {
	return Config{
		MaxStops:      12,
		MaxOpenRoutes: 2,
		RadiusMiles:   3,
	}
}

func (c Config) validate() error {
	if c.MaxStops < 2 || c.MaxStops%2 != 0 {
		return fmt.Errorf("%w: max stops %d must be even and at least 2", ErrInvalidConfig, c.MaxStops)
	}
	if c.MaxOpenRoutes < 1 {
		return fmt.Errorf("%w: max open routes %d", ErrInvalidConfig, c.MaxOpenRoutes)
	}
	if c.RadiusMiles <= 0 {
		return fmt.Errorf("%w: radius %f", ErrInvalidConfig, c.RadiusMiles)
	}
	return nil
}
