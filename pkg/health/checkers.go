package health

import (
	"context"
	"os"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a CheckFunc that reports unhealthy when the
// number of goroutines exceeds the given threshold. Useful as a liveness
// check to detect goroutine leaks.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		count := runtime.NumGoroutine()
		if count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// DirWritableCheck returns a CheckFunc that verifies the given directory
// exists and accepts writes. Useful as a readiness check for the local state
// directory: when it stops being writable, cart and deal persistence fail.
func DirWritableCheck(dir string) CheckFunc {
	return func(_ context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return errors.Wrap(err, "stat state dir")
		}
		if !info.IsDir() {
			return errors.Errorf("%s is not a directory", dir)
		}

		f, err := os.CreateTemp(dir, ".healthcheck-*")
		if err != nil {
			return errors.Wrap(err, "state dir is not writable")
		}
		name := f.Name()
		_ = f.Close()
		if err := os.Remove(name); err != nil {
			return errors.Wrap(err, "remove probe file")
		}
		return nil
	}
}
