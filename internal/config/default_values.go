package config

const (
	DefaultAPIBaseURL   = "http://localhost:5000/api"
	DefaultAPITimeoutMS = 60000

	DefaultToastMS         = 3000
	DefaultUploadToastMS   = 3500
	DefaultRedirectDelayMS = 1000

	DefaultMaxFileBytes = 500000

	DefaultStorageBaseDir = "~/.meetingmind"
	DefaultLogMaxMB       = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	envPrefix = "MEETINGMIND"
)
