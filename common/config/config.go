package config

import (
	"os"
	"strconv"

	"hackathon_system/lib/logger"

	"github.com/joho/godotenv"
	"github.com/xorcare/pointer"
	"gopkg.in/yaml.v3"
)

const (
	envDSN  = "HACKATHON_DB_DSN"
	envPort = "HACKATHON_PORT"
)

type Config struct {
	Port int     `yaml:"Port"`
	Host *string `yaml:"Host,omitempty"` // leave empty for localhost

	Logger *logger.Config `yaml:"Logger,omitempty"`

	DB     DBConfig      `yaml:"DB"`
	Server *ServerConfig `yaml:"Server,omitempty"`
	Auth   *AuthConfig   `yaml:"Auth,omitempty"`
	Events *EventsConfig `yaml:"Events,omitempty"`
}

// ReadConfig reads yaml config, then applies .env and environment overrides
func ReadConfig(configPath string) *Config {
	content, err := os.ReadFile(configPath)
	if err != nil {
		panic(err)
	}

	config := new(Config)
	err = yaml.Unmarshal(content, config)
	if err != nil {
		panic(err)
	}

	// .env is optional
	_ = godotenv.Load()
	applyEnv(config)

	FillInConfig(config)

	return config
}

func applyEnv(config *Config) {
	if dsn, ok := os.LookupEnv(envDSN); ok && dsn != "" {
		config.DB.Dsn = dsn
		config.DB.InMemory = false
	}
	if port, ok := os.LookupEnv(envPort); ok && port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			panic("bad " + envPort + " value: " + port)
		}
		config.Port = p
	}
}

// FillInConfig sets defaults for all unset values
func FillInConfig(config *Config) {
	if config.Host == nil {
		config.Host = pointer.String("localhost")
	}
	if config.Port == 0 {
		config.Port = 8080
	}

	fillInDBConfig(&config.DB)

	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	fillInServerConfig(config.Server)

	if config.Auth == nil {
		config.Auth = &AuthConfig{}
	}
	fillInAuthConfig(config.Auth)

	if config.Events == nil {
		config.Events = &EventsConfig{}
	}
	fillInEventsConfig(config.Events)
}
