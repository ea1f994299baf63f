package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	tu "github.com/desertthunder/studyous/internal/testing"
)

type mockUploader struct {
	mu       sync.Mutex
	requests []services.UploadRequest
	failOn   map[string]error // keyed by title
	block    chan struct{}
}

func (m *mockUploader) Upload(ctx context.Context, req services.UploadRequest) (*models.Video, error) {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err, ok := m.failOn[req.Title]; ok {
		return nil, err
	}
	video := models.NewVideo(0, req.Title, req.CourseCode, "u1")
	video.SetID("vid-" + shared.Slug(req.Title))
	return video, nil
}

func (m *mockUploader) titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r.Title)
	}
	return out
}

func newEngine(u Uploader) *UploadEngine {
	return NewUploadEngine(u, shared.NewLogger(io.Discard))
}

func TestTitleFromFilename(t *testing.T) {
	tests := map[string]string{
		"/videos/linked_lists-part-2.mp4": "linked lists part 2",
		"Recursion.MOV":                   "Recursion",
		"a__b  c.webm":                    "a b c",
		"noext":                           "noext",
	}
	for in, want := range tests {
		if got := TitleFromFilename(in); got != want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScanVideos(t *testing.T) {
	dir := t.TempDir()
	tu.WriteFile(t, dir, "b.mp4", "x")
	tu.WriteFile(t, dir, "a.MKV", "x")
	tu.WriteFile(t, dir, "notes.txt", "x")
	tu.WriteFile(t, dir, "nested/c.webm", "x")

	t.Run("flat", func(t *testing.T) {
		files, err := ScanVideos(dir, false)
		if err != nil {
			t.Fatalf("ScanVideos failed: %v", err)
		}
		want := []string{filepath.Join(dir, "a.MKV"), filepath.Join(dir, "b.mp4")}
		if fmt.Sprint(files) != fmt.Sprint(want) {
			t.Errorf("expected %v, got %v", want, files)
		}
	})

	t.Run("recursive", func(t *testing.T) {
		files, err := ScanVideos(dir, true)
		if err != nil {
			t.Fatalf("ScanVideos failed: %v", err)
		}
		if len(files) != 3 {
			t.Errorf("expected 3 files, got %v", files)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := ScanVideos(filepath.Join(dir, "nope"), false); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		if _, err := ScanVideos(filepath.Join(dir, "b.mp4"), false); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestUploadEngine_Import(t *testing.T) {
	tests := []struct {
		name         string
		files        []string
		failOn       map[string]error
		workers      int
		wantUploaded int
		wantFailed   int
	}{
		{
			name:         "single file",
			files:        []string{"intro.mp4"},
			wantUploaded: 1,
		},
		{
			name:         "many files with workers",
			files:        []string{"one.mp4", "two.mov", "three.avi", "four.webm", "five.mkv"},
			workers:      4,
			wantUploaded: 5,
		},
		{
			name:         "partial failure",
			files:        []string{"good.mp4", "bad.mp4"},
			failOn:       map[string]error{"bad": shared.ErrInvalidFile},
			wantUploaded: 1,
			wantFailed:   1,
		},
		{
			name:  "empty directory",
			files: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				tu.WriteFile(t, dir, f, "frames")
			}

			uploader := &mockUploader{failOn: tt.failOn}
			result, err := newEngine(uploader).Import(context.Background(), nil, ImportOpts{
				CourseCode: "CSCE 121",
				Dir:        dir,
				NumWorkers: tt.workers,
				RateLimit:  1000,
			})
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}

			if result.TotalFiles != len(tt.files) {
				t.Errorf("expected %d files, got %d", len(tt.files), result.TotalFiles)
			}
			if result.Uploaded != tt.wantUploaded {
				t.Errorf("expected %d uploaded, got %d", tt.wantUploaded, result.Uploaded)
			}
			if result.Failed != tt.wantFailed {
				t.Errorf("expected %d failed, got %d", tt.wantFailed, result.Failed)
			}
			for _, res := range result.Results {
				if res.Error == nil && res.VideoID == "" {
					t.Errorf("successful result for %s missing video id", res.Path)
				}
				if res.Error != nil && res.Reason == "" {
					t.Errorf("failed result for %s missing reason", res.Path)
				}
			}
			if len(uploader.titles()) != len(tt.files) {
				t.Errorf("expected %d upload calls, got %d", len(tt.files), len(uploader.titles()))
			}
		})
	}
}

func TestUploadEngine_ImportKeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"c.mp4", "a.mp4", "b.mp4"} {
		tu.WriteFile(t, dir, f, "x")
	}

	result, err := newEngine(&mockUploader{}).Import(context.Background(), nil, ImportOpts{
		CourseCode: "CSCE 121", Dir: dir, NumWorkers: 3, RateLimit: 1000,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	var titles []string
	for _, r := range result.Results {
		titles = append(titles, r.Title)
	}
	if strings.Join(titles, ",") != "a,b,c" {
		t.Errorf("expected results in path order, got %v", titles)
	}
}

func TestUploadEngine_ImportErrors(t *testing.T) {
	t.Run("nil uploader", func(t *testing.T) {
		_, err := newEngine(nil).Import(context.Background(), nil, ImportOpts{CourseCode: "X", Dir: t.TempDir()})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := newEngine(&mockUploader{}).Import(context.Background(), nil, ImportOpts{Dir: t.TempDir()})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := newEngine(&mockUploader{}).Import(context.Background(), nil, ImportOpts{
			CourseCode: "X", Dir: filepath.Join(t.TempDir(), "nope"),
		})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		dir := t.TempDir()
		tu.WriteFile(t, dir, "a.mp4", "x")
		tu.WriteFile(t, dir, "b.mp4", "x")

		ctx, cancel := context.WithCancel(context.Background())
		uploader := &mockUploader{block: make(chan struct{})}
		time.AfterFunc(20*time.Millisecond, cancel)

		result, err := newEngine(uploader).Import(ctx, nil, ImportOpts{CourseCode: "X", Dir: dir, RateLimit: 1000})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result == nil {
			t.Fatal("expected partial result")
		}
		if result.Uploaded != 0 {
			t.Errorf("expected no uploads, got %d", result.Uploaded)
		}
	})
}

func TestUploadEngine_Manifest(t *testing.T) {
	dir := t.TempDir()
	tu.WriteFile(t, dir, "intro.mp4", "x")
	manifest := filepath.Join(t.TempDir(), "manifest.json")

	result, err := newEngine(&mockUploader{}).Import(context.Background(), nil, ImportOpts{
		CourseCode: "CSCE 121", Dir: dir, RateLimit: 1000, ManifestPath: manifest,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.ManifestPath != manifest {
		t.Errorf("expected manifest path %s, got %s", manifest, result.ManifestPath)
	}

	content := tu.MustReadFile(t, manifest)
	if !strings.Contains(content, `"uploaded": 1`) || !strings.Contains(content, `"video_id": "vid-intro"`) {
		t.Errorf("unexpected manifest: %s", content)
	}
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	dir := t.TempDir()
	tu.WriteFile(t, dir, "intro.mp4", "x")

	// Unbuffered and never read
	progressCh := make(chan ProgressUpdate)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := newEngine(&mockUploader{}).Import(context.Background(), progressCh, ImportOpts{
			CourseCode: "CSCE 121", Dir: dir, RateLimit: 1000,
		}); err != nil {
			t.Errorf("Import() error = %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Error("Import() should not block on progress sends")
	}
}

func TestProgressUpdates(t *testing.T) {
	dir := t.TempDir()
	tu.WriteFile(t, dir, "intro.mp4", "x")

	progressCh := make(chan ProgressUpdate, 32)
	if _, err := newEngine(&mockUploader{}).Import(context.Background(), progressCh, ImportOpts{
		CourseCode: "CSCE 121", Dir: dir, RateLimit: 1000,
	}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	close(progressCh)

	phases := map[Phase]int{}
	for u := range progressCh {
		phases[u.Phase]++
	}
	if phases[ScanFiles] != 2 {
		t.Errorf("expected 2 scan updates, got %d", phases[ScanFiles])
	}
	if phases[UploadFiles] != 2 {
		t.Errorf("expected started and completed upload updates, got %d", phases[UploadFiles])
	}
	if ScanFiles.String() != "scan_files" || Phase(99).String() != "" {
		t.Error("unexpected phase names")
	}
}
