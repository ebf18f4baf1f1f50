package batch

import "time"

// Policy is an injectable bounded-retry policy for chunk persistence. Tests
// inject zero-delay policies; production runs use the configured attempts and
// fixed delay.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

var DefaultPolicy = Policy{MaxAttempts: 3, Delay: 5 * time.Second}

// Do runs op up to MaxAttempts times, sleeping Delay between attempts, and
// returns the last error if every attempt failed.
func (p Policy) Do(op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && p.Delay > 0 {
			time.Sleep(p.Delay)
		}
		if err = op(); err == nil {
			return nil
		}
	}
	return err
}
