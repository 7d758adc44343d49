package biz

import (
	"golang.org/x/time/rate"
)

// NewRateLimit returns a limiter allowing perSecond events per second with an
// equal burst, or nil (no limit) when perSecond <= 0.
func NewRateLimit(perSecond int) Limiter {
	if perSecond > 0 {
		return rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
	return nil
}
