package domain

import (
	"errors"
	"math"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrRemoteUnavailable = errors.New("remote capability unavailable")
)

// OwnerShareRatio is the owner's part of every processed amount; the platform
// keeps the rest.
const OwnerShareRatio = 0.7

// Split divides amount into owner and platform shares. The platform share is
// the remainder, so the two always add back up to amount.
func Split(amount float64) (owner, platform float64) {
	owner = amount * OwnerShareRatio
	return owner, amount - owner
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
