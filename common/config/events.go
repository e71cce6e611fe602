package config

import (
	"hackathon_system/common/constants/eventstatus"
	"hackathon_system/lib/customfields"
)

type EventsConfig struct {
	// DashboardWindow is how long completed events are shown on dashboard
	DashboardWindow customfields.Duration `yaml:"DashboardWindow"`

	// DefaultMaxTeamSize is used for teams which are not registered to any event
	DefaultMaxTeamSize int `yaml:"DefaultMaxTeamSize"`

	// StatusRefreshInterval is the period of event status metrics refresh
	StatusRefreshInterval customfields.Duration `yaml:"StatusRefreshInterval"`
}

func fillInEventsConfig(config *EventsConfig) {
	if config.DashboardWindow <= 0 {
		config.DashboardWindow = customfields.Duration(eventstatus.DefaultDashboardWindow)
	}
	if config.DefaultMaxTeamSize <= 0 {
		config.DefaultMaxTeamSize = 4
	}
	if config.StatusRefreshInterval <= 0 {
		config.StatusRefreshInterval.FromStr("1m")
	}
}
