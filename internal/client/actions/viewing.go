package actions

import (
	"os"
	"sync"
	"time"
)

// Viewing is a handle to a file materialized for an external viewer.
// Release removes the backing temporary file; it runs at most once, whether
// invoked by the caller after the viewer took ownership or by the grace
// timer.
type Viewing struct {
	Path        string
	ContentType string

	once  sync.Once
	timer *time.Timer
}

func (v *Viewing) Release() {
	v.once.Do(func() {
		if v.timer != nil {
			v.timer.Stop()
		}
		_ = os.Remove(v.Path)
	})
}
