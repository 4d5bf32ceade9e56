package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatal("empty config must be disabled")
	}
	if !(Config{Mem: "heap.out"}).Enabled() {
		t.Fatal("mem-only config must be enabled")
	}
}

func TestStartStopWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	p, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", filepath.Base(path))
		}
	}
}

func TestStartBadPath(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Trace: filepath.Join(dir, "missing", "trace.out"),
	})
	if err == nil {
		t.Fatal("expected error for unwritable trace path")
	}
	// CPU profiling must be released so a new run can start.
	p, err := Start(Config{CPU: filepath.Join(dir, "cpu2.out")})
	if err != nil {
		t.Fatalf("restart after failure: %v", err)
	}
	_ = p.Stop()
}
