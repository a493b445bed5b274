package redpitaya

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff"
)

// OpenBoard is an Opener backed by librp
func OpenBoard(reset bool) (Board, error) {
	rp, err := Open(reset)
	if err != nil {
		return nil, err
	}
	return rp, nil
}

// OpenWithRetry opens a board, retrying with an exponential backoff for up
// to maxElapsed.  librp holds /dev/mem while a session is open, so a second
// process (e.g. the setgain CLI) can make initialization fail briefly.
// maxElapsed == 0 makes a single attempt.  ErrNoAPI is never retried.
func OpenWithRetry(open Opener, reset bool, maxElapsed time.Duration) (Board, error) {
	if maxElapsed <= 0 {
		return open(reset)
	}
	var (
		b       Board
		lastErr error
		fatal   bool
	)
	op := func() error {
		var err error
		b, err = open(reset)
		if err != nil {
			lastErr = err
			if errors.Is(err, ErrNoAPI) {
				fatal = true
				return nil
			}
			return err
		}
		lastErr = nil
		return nil
	}

	// backoff returns nil after the op stops it early, so the fatal
	// case has to be checked via lastErr
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     25 * time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         500 * time.Millisecond,
		MaxElapsedTime:      maxElapsed,
		Clock:               backoff.SystemClock})
	if fatal || err != nil {
		return nil, lastErr
	}
	return b, nil
}
