package config

type AuthConfig struct {
	// DevLogin allows to get session by email only. Do not enable in production
	DevLogin bool `yaml:"DevLogin"`

	// SessionCacheSize is the number of resolved sessions kept in memory
	SessionCacheSize int `yaml:"SessionCacheSize"`
}

func fillInAuthConfig(config *AuthConfig) {
	if config.SessionCacheSize == 0 {
		config.SessionCacheSize = 1024
	}
}
