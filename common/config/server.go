package config

type ServerConfig struct {
	// AllowOrigins are front-end origins allowed by CORS
	AllowOrigins []string `yaml:"AllowOrigins"`

	// Metrics enables /metrics endpoint
	Metrics bool `yaml:"Metrics"`
}

func fillInServerConfig(config *ServerConfig) {
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:3000"}
	}
}
