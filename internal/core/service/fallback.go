package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
)

const (
	capabilityAI           = "ai"
	capabilityExchangeRate = "exchange_rate"
)

// degrade records that operation answered with a fallback because capability
// failed with err.
func degrade(log zerolog.Logger, capability, operation string, err error) {
	metrics.RemoteFallbacksTotal.WithLabelValues(capability, operation).Inc()
	log.Warn().
		Err(err).
		Str("capability", capability).
		Str("operation", operation).
		Msg("remote capability failed, using fallback")
}

// parsePrice reads a price out of a model reply such as "$1,250" or " 300 ".
func parsePrice(reply string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(reply))
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
