package clients

import "time"

const (
	DEFAULT_MAX_ATTEMPTS = 1
	INITIAL_BACKOFF      = 1 * time.Second
	USER_AGENT           = "echomind-client/1.0 (+https://github.com/spacesedan/echomind)"
)
