package config

import "hackathon_system/lib/customfields"

type DBConfig struct {
	Dsn string `yaml:"Dsn"`

	// InMemory should be used only for tests and local runs
	InMemory bool `yaml:"InMemory"`

	// ConnectTimeout bounds retries of the first connection
	ConnectTimeout customfields.Duration `yaml:"ConnectTimeout"`
}

func fillInDBConfig(config *DBConfig) {
	if len(config.Dsn) == 0 && !config.InMemory {
		panic("No DB dsn specified")
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout.FromStr("30s")
	}
}
