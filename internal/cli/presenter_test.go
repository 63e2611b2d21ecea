package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/convplan/internal/errors"
	"github.com/agbru/convplan/internal/metrics"
	"github.com/agbru/convplan/internal/plan"
	"github.com/agbru/convplan/internal/ui"
)

func init() {
	// Keep assertions on plain text.
	ui.SetTheme("none")
}

func compileSmall(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.Compile(context.Background(),
		plan.Request{Idx1: plan.Identity(4), Idx2: plan.Identity(4)}, plan.Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return p
}

func TestDisplayStats(t *testing.T) {
	p := compileSmall(t)

	var buf bytes.Buffer
	DisplayStats(p, 5*time.Millisecond, metrics.MemoryDelta{AllocBytes: 2048, GCCycles: 1}, &buf)

	out := buf.String()
	for _, want := range []string{
		"Plan Statistics",
		"Multiplications",
		"Scratch slots:",
		"Output degrees: 7 of 7",
		"Compile time: 5ms",
		"2.0 KiB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayQuietStats(t *testing.T) {
	p := compileSmall(t)

	var buf bytes.Buffer
	DisplayQuietStats(p, &buf)

	out := buf.String()
	if !strings.HasPrefix(out, "mul=") || !strings.Contains(out, "out=7") {
		t.Errorf("unexpected quiet output %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("quiet output must be a single line, got %q", out)
	}
}

func TestDisplayDemo(t *testing.T) {
	var buf bytes.Buffer
	DisplayDemo([]int64{1, 2}, []int64{3, 4}, []int64{3, 10, 8}, []int{0, 1, 2}, &buf)

	out := buf.String()
	for _, want := range []string{"u = [1 2]", "(u*v)[1] = 10", "(u*v)[2] = 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer

	code := HandleError(apperrors.NewConfigError("bad n"), &buf)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("config error exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(buf.String(), "bad n") {
		t.Errorf("error text not printed: %q", buf.String())
	}

	buf.Reset()
	code = HandleError(apperrors.WrapError(context.DeadlineExceeded, "compiling"), &buf)
	if code != apperrors.ExitErrorGeneric {
		t.Errorf("generic error exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestWritePlanToFile(t *testing.T) {
	p := compileSmall(t)
	path := t.TempDir() + "/sub/plan.txt"

	err := WritePlanToFile(p, time.Millisecond, OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("WritePlanToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !strings.Contains(string(data), "// Input length: 4") {
		t.Errorf("missing header in file:\n%s", data)
	}
	if !strings.Contains(string(data), "convolution plan: n=4") {
		t.Errorf("missing plan source in file:\n%s", data)
	}
}

func TestWritePlanToFileNoPath(t *testing.T) {
	if err := WritePlanToFile(compileSmall(t), 0, OutputConfig{}); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestRunWithSpinner(t *testing.T) {
	sp := &fakeSpinner{}
	err := RunWithSpinner(sp, "compiling", func() error { return nil })
	if err != nil {
		t.Fatalf("RunWithSpinner() error = %v", err)
	}
	if !sp.started || !sp.stopped {
		t.Error("spinner must be started and stopped")
	}
	if sp.suffix != " compiling" {
		t.Errorf("suffix = %q", sp.suffix)
	}
}

type fakeSpinner struct {
	started, stopped bool
	suffix           string
}

func (f *fakeSpinner) Start()                { f.started = true }
func (f *fakeSpinner) Stop()                 { f.stopped = true }
func (f *fakeSpinner) UpdateSuffix(s string) { f.suffix = s }
