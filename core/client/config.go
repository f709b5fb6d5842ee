package client

// Config holds configuration for the upstream game-data client.
type Config struct {
	// BaseURL is the root URL of the upstream game-data service.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:3200"`
	// AccessKey is sent as X-Access-Key on every request. Optional.
	AccessKey string `mapstructure:"access_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
