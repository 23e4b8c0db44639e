package payment

import "errors"

var ErrNotConfigured = errors.New("mpesa credentials are not configured")
