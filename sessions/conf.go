package sessions

import "time"

type Conf struct {
	EncryptionKey string `json:"enckey"`

	ExpireSliding int `json:"expire_sliding"` // seconds since last request
	ExpireHardcap int `json:"expire_hardcap"` // seconds since session creation
	CleanupCycle  int `json:"cleanup_cycle"`  // seconds between sweeps (in-process store)
}

const (
	DefaultExpireSliding = 30 * 60
	DefaultExpireHardcap = 12 * 60 * 60
	DefaultCleanupCycle  = 5 * 60
)

func (c *Conf) ApplyDefaults() {
	if c.ExpireSliding <= 0 {
		c.ExpireSliding = DefaultExpireSliding
	}
	if c.ExpireHardcap <= 0 {
		c.ExpireHardcap = DefaultExpireHardcap
	}
	if c.CleanupCycle <= 0 {
		c.CleanupCycle = DefaultCleanupCycle
	}
}

func (c *Conf) Sliding() time.Duration {
	return time.Duration(c.ExpireSliding) * time.Second
}

func (c *Conf) Hardcap() time.Duration {
	return time.Duration(c.ExpireHardcap) * time.Second
}

func (c *Conf) Cycle() time.Duration {
	return time.Duration(c.CleanupCycle) * time.Second
}
