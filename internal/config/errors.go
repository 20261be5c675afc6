package config

import "errors"

var (
	ErrRadiusBounds  = errors.New("interaction radius out of range 20-250")
	ErrBallBounds    = errors.New("ball count out of range 100-5000")
	ErrUnknownMode   = errors.New("mode must be ambient or bordered")
	ErrFPS           = errors.New("fps out of range 1-240")
	ErrUnknownPreset = errors.New("unknown preset")
)
