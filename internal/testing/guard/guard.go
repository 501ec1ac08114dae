// Package guard marks the process as a test run. In-memory fixtures import
// it so nothing they touch reaches for real infrastructure.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("JOBBOARD_TEST_MODE") == "" {
			_ = os.Setenv("JOBBOARD_TEST_MODE", "1")
		}
	})
}
