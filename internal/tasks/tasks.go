// package tasks implements bulk video operations.
//
// The core abstraction is UploadEngine, which imports a directory of videos into a course.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/studyous/internal/formatter"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/services"
	"github.com/desertthunder/studyous/internal/shared"
	"golang.org/x/time/rate"
)

// Uploader uploads one video. [services.VideoService] implements it.
type Uploader interface {
	Upload(ctx context.Context, req services.UploadRequest) (*models.Video, error)
}

// ImportOpts contains configuration for a bulk import.
type ImportOpts struct {
	CourseCode   string  // Course every file is uploaded to
	Dir          string  // Directory to scan
	Recursive    bool    // Descend into subdirectories
	NumWorkers   int     // Concurrent workers (default: 3)
	RateLimit    float64 // Uploads started per second (default: 5)
	ManifestPath string  // Optional path for a JSON summary
}

// FileResult is the outcome of importing one file.
type FileResult struct {
	Path    string        `json:"path"`
	Title   string        `json:"title"`
	VideoID string        `json:"video_id,omitempty"`
	Video   *models.Video `json:"-"`
	Error   error         `json:"-"`
	Reason  string        `json:"error,omitempty"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	CourseCode   string       `json:"course_code"`
	Directory    string       `json:"directory"`
	TotalFiles   int          `json:"total_files"`
	Uploaded     int          `json:"uploaded"`
	Failed       int          `json:"failed"`
	Results      []FileResult `json:"results"`
	ManifestPath string       `json:"-"`
}

// UploadEngine imports directories of videos through an [Uploader].
type UploadEngine struct {
	uploader Uploader
	logger   *log.Logger
}

// NewUploadEngine creates a new UploadEngine.
func NewUploadEngine(uploader Uploader, logger *log.Logger) *UploadEngine {
	return &UploadEngine{uploader: uploader, logger: shared.WithLogger(logger, "task", "import")}
}

type uploadJob struct {
	index int
	path  string
}

// sendProgress sends a progress update through the channel without blocking.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// TitleFromFilename turns a file name into a video title.
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}

// ScanVideos returns the files in dir with an accepted video extension, sorted by path.
func ScanVideos(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrInvalidArgument, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && slices.Contains(services.AllowedExtensions, shared.FileExtension(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	slices.Sort(files)
	return files, nil
}

// Import uploads every video file in opts.Dir to opts.CourseCode.
//
// Uses a worker pool with a shared rate limiter. Individual failures are recorded in the result;
// the returned error is reserved for scan failures, cancellation and manifest errors.
func (e *UploadEngine) Import(ctx context.Context, prog chan<- ProgressUpdate, opts ImportOpts) (*ImportResult, error) {
	if e.uploader == nil {
		return nil, fmt.Errorf("%w: uploader not initialized", shared.ErrServiceUnavailable)
	}
	if opts.CourseCode == "" {
		return nil, fmt.Errorf("%w: course code", shared.ErrMissingArgument)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, scanningUpdate(opts.Dir))
	files, err := ScanVideos(opts.Dir, opts.Recursive)
	if err != nil {
		return nil, err
	}
	e.sendProgress(prog, scannedUpdate(len(files)))

	total := len(files)
	result := &ImportResult{
		CourseCode: opts.CourseCode,
		Directory:  opts.Dir,
		TotalFiles: total,
		Results:    make([]FileResult, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan uploadJob, total)
	results := make(chan uploadJob, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.uploadWorker(ctx, &wg, jobs, results, result, opts.CourseCode)
	}

	go func() {
		defer close(jobs)
		for i, path := range files {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			e.sendProgress(prog, uploadingUpdate(i+1, total, path))
			jobs <- uploadJob{index: i, path: path}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for job := range results {
		completed++
		res := result.Results[job.index]
		if res.Error == nil {
			result.Uploaded++
			e.sendProgress(prog, uploadCompletedUpdate(completed, total, res))
		} else {
			result.Failed++
			e.sendProgress(prog, uploadFailedUpdate(completed, total, res))
		}
	}

	if err := ctx.Err(); err != nil {
		result.Results = slices.DeleteFunc(result.Results, func(r FileResult) bool { return r.Path == "" })
		return result, err
	}

	e.logger.Info("import finished", "course", opts.CourseCode, "uploaded", result.Uploaded, "failed", result.Failed)

	if opts.ManifestPath != "" {
		if err := formatter.WriteManifest(result, opts.ManifestPath); err != nil {
			return result, fmt.Errorf("import completed but failed to write manifest: %w", err)
		}
		result.ManifestPath = opts.ManifestPath
		e.sendProgress(prog, manifestUpdate(opts.ManifestPath))
	}
	return result, nil
}

// uploadWorker uploads files from the jobs channel. Each job owns its slot in result.Results.
func (e *UploadEngine) uploadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan uploadJob,
	results chan<- uploadJob,
	result *ImportResult,
	course string,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}

		res := FileResult{Path: job.path, Title: TitleFromFilename(job.path)}
		video, err := e.uploader.Upload(ctx, services.UploadRequest{
			CourseCode: course,
			Title:      res.Title,
			FilePath:   job.path,
		})
		if err != nil {
			res.Error = err
			res.Reason = err.Error()
			e.logger.Warn("upload failed", "file", job.path, "error", err)
		} else {
			res.Video = video
			res.VideoID = video.ID()
		}

		result.Results[job.index] = res
		results <- job
	}
}
