package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/tally/internal/persist"
)

// newTestApp builds an application rooted in a temp directory, fed by
// the given input lines.
func newTestApp(t *testing.T, input ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	t.Setenv("TALLY_BASE_DIR", t.TempDir())

	var out bytes.Buffer
	app, err := New(Options{
		Stdin:  strings.NewReader(strings.Join(input, "\n") + "\n"),
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, &out
}

func runApp(t *testing.T, input ...string) string {
	t.Helper()
	app, out := newTestApp(t, input...)
	if err := app.Run(); err != nil && !errors.Is(err, ErrQuit) {
		t.Fatalf("Run error: %v", err)
	}
	return out.String()
}

func TestRunExit(t *testing.T) {
	app, out := newTestApp(t, "exit")
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Errorf("Run = %v, want ErrQuit", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Error("missing goodbye message")
	}
}

func TestRunHelp(t *testing.T) {
	output := runApp(t, "help", "exit")
	if !strings.Contains(output, "Available commands:") {
		t.Error("missing help output")
	}
	if !strings.Contains(output, "add, divide, multiply, power, root, subtract") {
		t.Errorf("help does not list operations:\n%s", output)
	}
}

func TestRunOperations(t *testing.T) {
	tests := []struct {
		op   string
		a, b string
		want string
	}{
		{"add", "10", "5", "Result: 15"},
		{"subtract", "10", "4", "Result: 6"},
		{"multiply", "3", "7", "Result: 21"},
		{"divide", "20", "4", "Result: 5"},
		{"power", "2", "8", "Result: 256"},
		{"root", "27", "3", "Result: 3"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			output := runApp(t, tt.op, tt.a, tt.b, "exit")
			if !strings.Contains(output, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, output)
			}
		})
	}
}

func TestRunCancelFirstNumber(t *testing.T) {
	output := runApp(t, "add", "cancel", "exit")
	if !strings.Contains(output, "Operation cancelled") {
		t.Error("missing cancel message")
	}
}

func TestRunCancelSecondNumber(t *testing.T) {
	output := runApp(t, "add", "5", "cancel", "exit")
	if !strings.Contains(output, "Operation cancelled") {
		t.Error("missing cancel message")
	}
}

func TestRunInvalidNumberReprompts(t *testing.T) {
	output := runApp(t, "add", "abc", "3", "4", "exit")
	if !strings.Contains(output, "Error: invalid number 'abc'") {
		t.Errorf("missing invalid number error:\n%s", output)
	}
	if !strings.Contains(output, "Result: 7") {
		t.Errorf("calculation did not complete after re-prompt:\n%s", output)
	}
}

func TestRunDivisionByZero(t *testing.T) {
	output := runApp(t, "divide", "10", "0", "history", "exit")
	if !strings.Contains(output, "Error:") {
		t.Error("missing error output")
	}
	if !strings.Contains(output, "No calculations in history") {
		t.Error("failed calculation should leave history empty")
	}
}

func TestRunHistory(t *testing.T) {
	output := runApp(t, "history", "add", "2", "3", "history", "exit")
	if !strings.Contains(output, "No calculations in history") {
		t.Error("missing empty history message")
	}
	if !strings.Contains(output, "Calculation History:") {
		t.Error("missing history listing")
	}
	if !strings.Contains(output, "1. add(2, 3) = 5") {
		t.Errorf("missing history entry:\n%s", output)
	}
}

func TestRunClear(t *testing.T) {
	output := runApp(t, "add", "2", "3", "clear", "history", "exit")
	if !strings.Contains(output, "History cleared") {
		t.Error("missing clear message")
	}
	if !strings.Contains(output, "No calculations in history") {
		t.Error("history not cleared")
	}
}

func TestRunUndoRedo(t *testing.T) {
	output := runApp(t, "add", "2", "3", "undo", "redo", "exit")
	if !strings.Contains(output, "Operation undone") {
		t.Error("missing undo message")
	}
	if !strings.Contains(output, "Operation redone") {
		t.Error("missing redo message")
	}
}

func TestRunUndoEmpty(t *testing.T) {
	output := runApp(t, "undo", "exit")
	if !strings.Contains(output, "Nothing to undo") {
		t.Error("missing empty undo message")
	}
}

func TestRunRedoEmpty(t *testing.T) {
	output := runApp(t, "redo", "exit")
	if !strings.Contains(output, "Nothing to redo") {
		t.Error("missing empty redo message")
	}
}

func TestRunSaveLoad(t *testing.T) {
	output := runApp(t, "add", "2", "3", "save", "clear", "load", "history", "exit")
	if !strings.Contains(output, "History saved successfully") {
		t.Error("missing save message")
	}
	if !strings.Contains(output, "History loaded successfully") {
		t.Error("missing load message")
	}
	if !strings.Contains(output, "1. add(2, 3) = 5") {
		t.Errorf("load did not restore history:\n%s", output)
	}
}

func TestRunStats(t *testing.T) {
	output := runApp(t, "add", "2", "3", "stats", "exit")
	if !strings.Contains(output, "Observer deliveries:") {
		t.Error("missing stats output")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	output := runApp(t, "foobar", "exit")
	if !strings.Contains(output, "Unknown command: 'foobar'") {
		t.Errorf("missing unknown command message:\n%s", output)
	}
}

func TestRunEOF(t *testing.T) {
	app, out := newTestApp(t) // single blank line, then EOF
	if err := app.Run(); err != nil {
		t.Errorf("Run = %v, want nil on EOF", err)
	}
	if !strings.Contains(out.String(), "Input terminated. Exiting...") {
		t.Error("missing EOF message")
	}
}

func TestAutoSaveWritesHistoryFile(t *testing.T) {
	app, _ := newTestApp(t, "add", "2", "3", "exit")
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run error: %v", err)
	}

	records, err := persist.Load(app.Config().HistoryFile)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 1 || records[0].Operation != "add" {
		t.Errorf("auto-saved history = %v, want one add record", records)
	}
}

func TestAutoSaveDisabled(t *testing.T) {
	t.Setenv("TALLY_BASE_DIR", t.TempDir())
	t.Setenv("TALLY_AUTO_SAVE", "false")

	var out bytes.Buffer
	app, err := New(Options{
		Stdin:  strings.NewReader("add\n2\n3\nexit\n"),
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run error: %v", err)
	}
	app.Shutdown()

	if _, err := os.Stat(app.Config().HistoryFile); !os.IsNotExist(err) {
		t.Errorf("history file should not exist with auto_save=false, stat err=%v", err)
	}
}

func TestShutdownSavesHistory(t *testing.T) {
	app, _ := newTestApp(t)

	rec, err := app.Calculator().Perform("add", dec(t, "1"), dec(t, "2"))
	if err != nil {
		t.Fatal(err)
	}
	app.Shutdown()

	records, err := persist.Load(app.Config().HistoryFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || !records[0].Equal(rec) {
		t.Errorf("records = %v, want [%s]", records, rec)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Setenv("TALLY_BASE_DIR", t.TempDir())
	t.Setenv("TALLY_MAX_HISTORY_SIZE", "0")

	_, err := New(Options{Stdout: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected config error")
	}
	var ierr *InitError
	if !errors.As(err, &ierr) {
		t.Errorf("error = %T, want *InitError", err)
	}
}

func TestLogFileWritten(t *testing.T) {
	app, _ := newTestApp(t, "add", "2", "3", "exit")
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatal(err)
	}
	app.Shutdown()

	data, err := os.ReadFile(app.Config().LogFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "calculation") {
		t.Error("log file missing calculation entry")
	}
	if !strings.Contains(string(data), "session started") {
		t.Error("log file missing session start entry")
	}
}

func TestHistoryFilePathUnderBaseDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("TALLY_BASE_DIR", base)

	app, err := New(Options{Stdout: &bytes.Buffer{}, Stdin: strings.NewReader("")})
	if err != nil {
		t.Fatal(err)
	}
	defer app.Shutdown()

	want := filepath.Join(base, "history", "tally_history.csv")
	if app.Config().HistoryFile != want {
		t.Errorf("HistoryFile = %q, want %q", app.Config().HistoryFile, want)
	}
}
