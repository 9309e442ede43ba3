package jwtutil

import (
	"errors"
	"time"
)

const Issuer = "password-meter"

var ErrNoSecret = errors.New("jwt secret not configured")

type Config struct {
	Secret    []byte
	ClockSkew time.Duration
}

func NewConfig(secret string, skew time.Duration) Config {
	if skew < 0 {
		skew = 0
	}
	return Config{Secret: []byte(secret), ClockSkew: skew}
}
