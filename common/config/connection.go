package config

// Connection describes how to reach a running hackathon API
type Connection struct {
	Address string `yaml:"Address"`
	// Token is the bearer session token, may be empty for public endpoints
	Token string `yaml:"Token,omitempty"`
}
