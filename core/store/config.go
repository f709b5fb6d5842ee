package store

// Config holds configuration for the persistent document store.
type Config struct {
	// DataPath is the root directory for persisted documents.
	DataPath string `mapstructure:"data_path" default:"./data"`
	// Backend selects the storage backend (fs or s3). The s3 backend still
	// writes locally but mirrors every document to a bucket and serves reads
	// from it when the local file is missing.
	Backend string `mapstructure:"backend" default:"fs"`
	// Endpoint is the URL of the object storage service (s3 backend only).
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket documents are mirrored to.
	Bucket string `mapstructure:"bucket" default:"gamedata"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFS, BackendS3:
		return true
	default:
		return false
	}
}
