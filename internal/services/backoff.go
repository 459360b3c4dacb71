package services

import "time"

// withBackoff retries fn with capped exponential backoff. Only plan fetches
// and checkout creation go through this; the provider-matching query never
// retries and fails soft instead.
func withBackoff(attempts int, base time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	delay := base
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
