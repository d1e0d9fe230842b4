package port

import (
	"time"

	"elering2mqtt/internal/core/domain"
	"elering2mqtt/pkg/elering"
)

// PriceDayBuilder decides the active delivery window and turns raw API
// rows into a publishable day of prices.
type PriceDayBuilder interface {
	Window(now time.Time) domain.PriceWindow
	Build(window domain.PriceWindow, rows []elering.PriceRow, fetchedAt time.Time) domain.PriceDay
}
