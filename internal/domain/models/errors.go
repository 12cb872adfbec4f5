package models

import "errors"

var (
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidHorizon    = errors.New("invalid scan horizon")
	ErrInvalidProfile    = errors.New("invalid birth profile")
	ErrInvalidThresholds = errors.New("invalid classification thresholds")
	ErrScanIncomplete    = errors.New("scan incomplete")
)
