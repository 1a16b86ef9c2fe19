package throttle

import "time"

// Conf is loaded from the app config. Seconds granularity is enough for
// document-generation throttling.
type Conf struct {
	Burst           int `json:"burst"`     // maximum tokens in a bucket
	Increment       int `json:"increment"` // tokens added each period
	PeriodSeconds   int `json:"period"`
	CleanupCycleMin int `json:"cleanup_cycle_min"`
	CleanupOlderMin int `json:"cleanup_older_min"`
}

const (
	DefaultBurst           = 3
	DefaultIncrement       = 1
	DefaultPeriodSeconds   = 20
	DefaultCleanupCycleMin = 10
	DefaultCleanupOlderMin = 30
)

func (c *Conf) ApplyDefaults() {
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.Increment <= 0 {
		c.Increment = DefaultIncrement
	}
	if c.PeriodSeconds <= 0 {
		c.PeriodSeconds = DefaultPeriodSeconds
	}
	if c.CleanupCycleMin <= 0 {
		c.CleanupCycleMin = DefaultCleanupCycleMin
	}
	if c.CleanupOlderMin <= 0 {
		c.CleanupOlderMin = DefaultCleanupOlderMin
	}
}

// GroupConf is the refill policy for one bucket group.
type GroupConf struct {
	Burst     int           // maximum number of tokens in the bucket
	Increment int           // how many tokens to add each period
	Period    time.Duration // how often to add Increment
}

func (c *Conf) GroupConf() *GroupConf {
	return &GroupConf{
		Burst:     c.Burst,
		Increment: c.Increment,
		Period:    time.Duration(c.PeriodSeconds) * time.Second,
	}
}
