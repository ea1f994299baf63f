package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/studyous/internal/catalog"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/repositories"
	"github.com/desertthunder/studyous/internal/shared"
)

// VideoService lists, fetches and uploads course videos.
type VideoService struct {
	videos  *repositories.VideoRepository
	catalog catalog.Catalog
	auth    *AuthService
	store   Store
	baseURL string
	logger  *log.Logger
}

// NewVideoService creates a [VideoService]. baseURL is the media server's public origin.
func NewVideoService(
	videos *repositories.VideoRepository, c catalog.Catalog, auth *AuthService, store Store, baseURL string, logger *log.Logger,
) *VideoService {
	return &VideoService{
		videos:  videos,
		catalog: c,
		auth:    auth,
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  shared.WithLogger(logger, "service", "videos"),
	}
}

// List returns the videos for courseCode, newest first. A search term that is blank after trimming
// is ignored; otherwise it is matched case-insensitively against title and description.
func (s *VideoService) List(courseCode, search string) ([]*models.Video, error) {
	return s.videos.ListByCourse(courseCode, strings.TrimSpace(search))
}

// Get returns a single video.
func (s *VideoService) Get(id string) (*models.Video, error) {
	return s.videos.Get(id)
}

// ListByUploader returns the videos uploaded by userID, newest first.
func (s *VideoService) ListByUploader(userID string) ([]*models.Video, error) {
	return s.videos.ListByUploader(userID)
}

// MediaURL returns the public URL for a storage key.
func (s *VideoService) MediaURL(key string) string {
	return s.baseURL + "/media/" + key
}

// ValidateUpload checks the upload form without touching storage or the database.
func (s *VideoService) ValidateUpload(req UploadRequest) (catalog.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return catalog.Course{}, fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	course, ok := s.catalog.Find(strings.TrimSpace(req.CourseCode))
	if !ok {
		return catalog.Course{}, fmt.Errorf("%w: %q", shared.ErrCourseNotFound, req.CourseCode)
	}

	if req.Duration != nil && *req.Duration < 0 {
		return catalog.Course{}, fmt.Errorf("%w: duration must not be negative", shared.ErrInvalidInput)
	}

	if strings.TrimSpace(req.FilePath) == "" {
		return catalog.Course{}, fmt.Errorf("%w: a video file is required", shared.ErrInvalidFile)
	}
	if ext := shared.FileExtension(req.FilePath); !slices.Contains(AllowedExtensions, ext) {
		return catalog.Course{}, fmt.Errorf("%w: %q is not one of %s",
			shared.ErrInvalidFile, ext, strings.Join(AllowedExtensions, ", "))
	}
	return course, nil
}

// Upload stores the file in req and records the video for the current user.
func (s *VideoService) Upload(ctx context.Context, req UploadRequest) (*models.Video, error) {
	user, err := s.auth.CurrentUser()
	if err != nil {
		return nil, err
	}

	course, err := s.ValidateUpload(req)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(req.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", shared.ErrInvalidFile, req.FilePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", shared.ErrInvalidFile, req.FilePath)
	}

	id := shared.GenerateID()
	key := fmt.Sprintf("%s/%s.%s", user.ID(), id, shared.FileExtension(req.FilePath))

	logger := shared.WithLogger(s.logger, "course", course.Code, "key", key)
	logger.Info("uploading video", "title", req.Title)

	size, err := s.store.Put(key, f)
	if err != nil {
		return nil, fmt.Errorf("failed to store video: %w", err)
	}

	video := models.NewVideo(0, strings.TrimSpace(req.Title), course.Code, user.ID())
	video.SetID(id)
	video.SetStorageKey(key)
	video.SetURL(s.MediaURL(key))
	video.SetDuration(req.Duration)
	if desc := strings.TrimSpace(req.Description); desc != "" {
		video.SetDescription(&desc)
	}

	if err := s.videos.Create(video); err != nil {
		if derr := s.store.Delete(key); derr != nil {
			logger.Warn("failed to remove orphaned object", "error", derr)
		}
		return nil, err
	}

	logger.Info("video uploaded", "id", video.ID(), "bytes", size)
	return video, nil
}
