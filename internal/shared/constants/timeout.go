package constants

import "time"

const (
	ProbeConnectTimeout = 2000 * time.Millisecond
	ProbeReadTimeout    = 2000 * time.Millisecond
	ProbeRetryDelay     = 500 * time.Millisecond
	ProbeMaxAttempts    = 3

	ShutdownTimeout = 5 * time.Second
)

const (
	PageDialTimeout   = 2000 * time.Millisecond
	PageHeaderTimeout = 10 * time.Second
)

const (
	PublishTimeout   = 2 * time.Second
	RedisDialTimeout = 2 * time.Second
	RedisIOTimeout   = time.Second
	RedisMaxRetries  = 1
)
