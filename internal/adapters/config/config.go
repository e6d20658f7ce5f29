package config

import (
	"errors"
	"fmt"

	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/keys"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultSignatureSize = 32
	DefaultCacheSize     = 1024
)

// Config is the client configuration. Key material stays hex encoded until
// Material or EncryptionKey decode it.
type Config struct {
	URL           string
	Key           string
	Salt          string
	EncryptionKey string
	SignatureSize int
	SourceMode    string
	CacheSize     int
	LogLevel      string
}

var envBindings = map[string]string{
	"imgproxy.url":            "IMGPROXY_URL",
	"imgproxy.key":            "IMGPROXY_KEY",
	"imgproxy.salt":           "IMGPROXY_SALT",
	"imgproxy.encryption_key": "IMGPROXY_SOURCE_URL_ENCRYPTION_KEY",
	"imgproxy.signature_size": "IMGPROXY_SIGNATURE_SIZE",
	"source.mode":             "IMGPROXY_SOURCE_MODE",
	"cache.size":              "IMGPROXY_CACHE_SIZE",
	"log.level":               "IMGPROXY_LOG_LEVEL",
}

// Load reads config.toml from the working directory, or the file at path when
// it is set, and overlays the IMGPROXY_* environment variables. A missing
// config.toml is not an error; a missing explicit path is.
func Load(v *viper.Viper, path string) (Config, error) {
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetDefault("imgproxy.signature_size", DefaultSignatureSize)
	v.SetDefault("source.mode", string(domain.Safe))
	v.SetDefault("cache.size", DefaultCacheSize)
	v.SetDefault("log.level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("read config file")
	case errors.As(err, &notFound):
		log.Debug().Msg("no config file found, using environment only")
	default:
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	return Config{
		URL:           v.GetString("imgproxy.url"),
		Key:           v.GetString("imgproxy.key"),
		Salt:          v.GetString("imgproxy.salt"),
		EncryptionKey: v.GetString("imgproxy.encryption_key"),
		SignatureSize: v.GetInt("imgproxy.signature_size"),
		SourceMode:    v.GetString("source.mode"),
		CacheSize:     v.GetInt("cache.size"),
		LogLevel:      v.GetString("log.level"),
	}, nil
}

func (c Config) Mode() (domain.Mode, error) {
	return domain.ParseMode(c.SourceMode)
}

func (c Config) Material() (keys.Material, error) {
	return keys.New(c.Key, c.Salt)
}

func (c Config) Encryption() (keys.EncryptionKey, error) {
	return keys.NewEncryptionKey(c.EncryptionKey)
}

// Level maps the configured log level onto zerolog, defaulting to info.
func (c Config) Level() zerolog.Level {
	switch c.LogLevel {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
