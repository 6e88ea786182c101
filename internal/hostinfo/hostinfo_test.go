package hostinfo

import (
	"context"
	"runtime"
	"testing"
)

func TestCollect(t *testing.T) {
	info, err := Collect(context.Background())
	if info == nil {
		t.Fatal("expected info even when probes fail")
	}
	if err != nil {
		t.Logf("some probes failed: %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("expected os %s, got %s", runtime.GOOS, info.OS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("expected arch %s, got %s", runtime.GOARCH, info.Arch)
	}
	if err == nil && info.LogicalCores < 1 {
		t.Errorf("expected at least one logical core, got %d", info.LogicalCores)
	}
}

func TestCollect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info, _ := Collect(ctx)
	if info == nil || info.OS == "" {
		t.Error("expected os to be filled without probing")
	}
}
