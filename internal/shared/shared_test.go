package shared

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 7, want: "0:07"},
		{name: "exact minute", seconds: 60, want: "1:00"},
		{name: "minutes and seconds", seconds: 754, want: "12:34"},
		{name: "negative clamps", seconds: -5, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.Local)
	if got := FormatDate(d); got != "2025-03-04" {
		t.Errorf("FormatDate() = %v, want 2025-03-04", got)
	}
}

func TestFileExtension(t *testing.T) {
	tc := map[string]string{
		"lecture.mp4":      "mp4",
		"LECTURE.MOV":      "mov",
		"notes.final.webm": "webm",
		"noext":            "",
		"dir.d/clip":       "",
	}

	for name, want := range tc {
		if got := FileExtension(name); got != want {
			t.Errorf("FileExtension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSlug(t *testing.T) {
	tc := map[string]string{
		"CSCE 121":        "csce_121",
		"  MATH--151  ":   "math_151",
		"already_slugged": "already_slugged",
		"":                "",
	}

	for in, want := range tc {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info("hello")

	content := mustRead(t, path)
	if content == "" {
		t.Error("expected log output in file")
	}
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() {
		getRuntime = origRuntime
		startCommand = origStart
	})

	var started *exec.Cmd
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("http://127.0.0.1:3000/media/a.mp4"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open, got %+v", started)
		}
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		err := OpenBrowser("file:///etc/passwd")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
