package contact

import "errors"

var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrNotConfigured = errors.New("relay is not configured")
	ErrDelivery      = errors.New("message delivery failed")
)
