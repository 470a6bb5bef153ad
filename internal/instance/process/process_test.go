package process

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func TestExecStarter_EmptyExecutable(t *testing.T) {
	_, err := ExecStarter{}.Start(context.Background(), "")
	if !errors.Is(err, ErrEmptyExecutable) {
		t.Errorf("Start(\"\") error = %v, want ErrEmptyExecutable", err)
	}
}

func TestExecStarter_MissingExecutable(t *testing.T) {
	_, err := ExecStarter{}.Start(context.Background(), "vslaunch-definitely-not-installed")
	if err == nil {
		t.Error("Start() with missing executable should fail")
	}
}

func TestExecStarter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecStarter{}.Start(ctx, "go")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
}

func TestExecStarter_ObservesExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}

	p, err := ExecStarter{}.Start(context.Background(), "sh", "-c", "exit 3")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.PID() <= 0 {
		t.Errorf("PID() = %d, want > 0", p.PID())
	}

	deadline := time.Now().Add(5 * time.Second)
	for !p.Exited() {
		if time.Now().After(deadline) {
			t.Fatal("process did not report exit")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if title := p.MainWindowTitle(); title != "" {
		t.Errorf("MainWindowTitle() after exit = %q, want empty", title)
	}
	if err := p.(*execProcess).ExitErr(); err == nil {
		t.Error("ExitErr() = nil, want non-zero exit status")
	}
}
