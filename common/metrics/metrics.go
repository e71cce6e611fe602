package metrics

import (
	"hackathon_system/common/constants/eventstatus"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusLabel = "status"
	kindLabel   = "kind"
	methodLabel = "method"
	routeLabel  = "route"
	codeLabel   = "code"
)

type Collector struct {
	Registry *prometheus.Registry

	EventsByStatus *prometheus.GaugeVec

	Registrations prometheus.Counter
	Submissions   *prometheus.CounterVec
	Votes         prometheus.Counter

	Requests *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
	}

	c.EventsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hackathon",
			Subsystem: "events",
			Name:      "count",
			Help:      "Number of events in every lifecycle status",
		},
		[]string{statusLabel},
	)
	c.Registry.MustRegister(c.EventsByStatus)

	c.Registrations = c.createCounter("registrations_count", "Number of teams registered to events")
	c.Votes = c.createCounter("votes_count", "Number of votes cast for submissions")

	c.Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "api",
			Name:      "submissions_count",
			Help:      "Number of saved project submissions",
		},
		[]string{kindLabel},
	)
	c.Registry.MustRegister(c.Submissions)

	c.Requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "http",
			Name:      "requests_count",
			Help:      "Number of handled http requests",
		},
		[]string{methodLabel, routeLabel, codeLabel},
	)
	c.Registry.MustRegister(c.Requests)

	return c
}

func (c *Collector) createCounter(name string, help string) prometheus.Counter {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hackathon",
		Subsystem: "api",
		Name:      name,
		Help:      help,
	})
	c.Registry.MustRegister(counter)
	return counter
}

// SetEventCounts replaces event status gauges, statuses absent in counts are set to zero
func (c *Collector) SetEventCounts(counts map[eventstatus.Status]int) {
	for _, status := range []eventstatus.Status{
		eventstatus.Upcoming, eventstatus.Active, eventstatus.Completed, eventstatus.Cancelled,
	} {
		c.EventsByStatus.With(prometheus.Labels{statusLabel: string(status)}).Set(float64(counts[status]))
	}
}

func (c *Collector) SubmissionSaved(created bool) {
	kind := "updated"
	if created {
		kind = "created"
	}
	c.Submissions.With(prometheus.Labels{kindLabel: kind}).Inc()
}

func (c *Collector) RequestHandled(method, route string, code string) {
	c.Requests.With(prometheus.Labels{
		methodLabel: method,
		routeLabel:  route,
		codeLabel:   code,
	}).Inc()
}
