package consts

import "errors"

var (
	Version   = "v0.1.0"
	BuildTime = "unknown"
	GitTag    = "unknown"
)

const AppName = "ifsniff"

var (
	ErrUnknownCodec  = errors.New("unknown codec")
	ErrUnknownEngine = errors.New("unknown capture engine")
	ErrUnknownPolicy = errors.New("unknown crash policy")
)
