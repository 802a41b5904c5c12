package ledger

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// ClaimGracePeriod время от захвата до старта
	ClaimGracePeriod time.Duration
	// ClaimDeadlineOffset маршрут можно взять до начала окна плюс смещение
	ClaimDeadlineOffset time.Duration
}

func DefaultConfig() Config {
	return Config{
		ClaimGracePeriod:    15 * time.Minute,
		ClaimDeadlineOffset: 30 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.ClaimGracePeriod <= 0 {
		return fmt.Errorf("%w: claim grace period %s", ErrInvalidConfig, c.ClaimGracePeriod)
	}
	if c.ClaimDeadlineOffset < 0 {
		return fmt.Errorf("%w: claim deadline offset %s", ErrInvalidConfig, c.ClaimDeadlineOffset)
	}
	return nil
}

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}
