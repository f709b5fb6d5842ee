package config

import (
	"reflect"
	"strings"

	"holotable/core/client"
	"holotable/core/logger"
	"holotable/core/server"
	"holotable/core/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Store holds configuration for the persistent document store.
	Store store.Config `mapstructure:"store"`
	// Client holds configuration for the upstream game-data client.
	Client client.Config `mapstructure:"client"`
	// Data holds configuration for synchronization and the request caches.
	Data DataConfig `mapstructure:"data"`
}

// DataConfig holds configuration for game-data synchronization and for the
// caches/concurrency limits used when serving requests.
type DataConfig struct {
	// TtlMs is how long fetched upstream entities stay cached, in
	// milliseconds. Zero or negative disables expiry.
	TtlMs int `mapstructure:"ttl_ms" default:"3600000"`
	// PlayerConcurrency caps in-flight upstream player fetches per batch.
	PlayerConcurrency int `mapstructure:"player_concurrency" default:"10"`
	// GuildConcurrency caps in-flight upstream fetches when expanding a
	// guild roster.
	GuildConcurrency int `mapstructure:"guild_concurrency" default:"10"`
	// Languages is the comma-separated allow-list of localization languages
	// to retain and persist.
	Languages string `mapstructure:"languages" default:"ENG_US"`
	// DisableLocalization skips all localization fetch/persist work.
	DisableLocalization bool `mapstructure:"disable_localization" default:"false"`
	// UseSegments switches the game-data fetch to segmented mode, trading
	// more round trips for lower peak memory.
	UseSegments bool `mapstructure:"use_segments" default:"false"`
	// UseUnzip asks the upstream to expand the localization bundle
	// server-side instead of returning a compressed archive.
	UseUnzip bool `mapstructure:"use_unzip" default:"false"`
	// UpdateIntervalMins is the poller period in minutes.
	UpdateIntervalMins int `mapstructure:"update_interval_mins" default:"5"`
	// IncludePveUnits forwards the upstream flag of the same name on
	// game-data fetches.
	IncludePveUnits bool `mapstructure:"include_pve_units" default:"true"`
}

// LanguageList returns the configured languages split and trimmed.
func (c DataConfig) LanguageList() []string {
	var langs []string
	for _, l := range strings.Split(c.Languages, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
