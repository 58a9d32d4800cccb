package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("seed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan DrMarioConfig, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg DrMarioConfig) { changes <- cfg }, nil)
	}()

	// The watcher starts asynchronously; keep rewriting until it reports.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for i := 2; ; i++ {
		select {
		case cfg := <-changes:
			if cfg.Seed < 2 {
				t.Errorf("reloaded seed = %d, expected a rewritten value", cfg.Seed)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte(fmt.Sprintf("seed: %d\n", i)), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatchReportsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("seed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 16)
	go func() {
		_ = Watch(ctx, path, func(DrMarioConfig) { t.Error("invalid config should not be applied") }, func(err error) { errs <- err })
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-errs:
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("pills:\n  fall_speed: 0\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no reload error observed")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", FileName), func(DrMarioConfig) {}, nil)
	if err == nil {
		t.Error("Watch() on a missing directory should fail")
	}
}
