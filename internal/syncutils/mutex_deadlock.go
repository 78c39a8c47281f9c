//go:build deadlock

package syncutils

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

type Mutex = deadlock.Mutex

func init() {
	deadlock.Opts.DeadlockTimeout = 20 * time.Second
}
