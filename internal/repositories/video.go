package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/shared"
)

const videoColumns = `id, sequence, title, description, course_code, duration, video_url, storage_key, uploader_id, created_at, updated_at`

// VideoRepository implements [models.Repository] for [models.Video] persistence.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new [VideoRepository] with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video with generated ID and sequence
func (r *VideoRepository) Create(video *models.Video) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if video.ID() == "" {
		video.SetID(shared.GenerateID())
	}
	video.SetSequence(sequence)

	if err := video.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO videos (id, sequence, title, description, course_code, duration, video_url, storage_key, uploader_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, video.ID(), sequence, video.Title(), nullString(video.Description()), video.CourseCode(),
		nullInt(video.Duration()), video.URL(), video.StorageKey(), video.UploaderID(), video.CreatedAt(), video.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a video by ID
func (r *VideoRepository) Get(id string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ?`

	video, err := scanVideo(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query video: %w", err)
	}
	return video, nil
}

// Update modifies the title, description and duration of a video
func (r *VideoRepository) Update(video *models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	now := time.Now()
	video.SetUpdatedAt(now)

	result, err := r.db.Exec(`UPDATE videos SET title = ?, description = ?, duration = ?, updated_at = ? WHERE id = ?`,
		video.Title(), nullString(video.Description()), nullInt(video.Duration()), now, video.ID())
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return expectOne(result, video.ID())
}

// Delete removes a video row by ID
func (r *VideoRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return expectOne(result, id)
}

// List retrieves videos matching the given criteria, newest first.
//
// Supported criteria:
//   - "course_code": exact course code (case-insensitive)
//   - "uploader_id": uploader user ID
//   - "search": substring matched against title or description (case-insensitive)
func (r *VideoRepository) List(criteria map[string]any) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE 1 = 1`
	args := []any{}

	if code, ok := criteria["course_code"].(string); ok && code != "" {
		query += " AND course_code = ?"
		args = append(args, code)
	}
	if uploader, ok := criteria["uploader_id"].(string); ok && uploader != "" {
		query += " AND uploader_id = ?"
		args = append(args, uploader)
	}
	if search, ok := criteria["search"].(string); ok && search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query += ` AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY created_at DESC, sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// ListByCourse returns the videos of a course, optionally narrowed by a search term
func (r *VideoRepository) ListByCourse(courseCode, search string) ([]*models.Video, error) {
	return r.List(map[string]any{"course_code": courseCode, "search": search})
}

// ListByUploader returns the videos uploaded by a user
func (r *VideoRepository) ListByUploader(userID string) ([]*models.Video, error) {
	return r.List(map[string]any{"uploader_id": userID})
}

func scanVideo(s scanner) (*models.Video, error) {
	var (
		id, title, code, url, key, uploader string
		sequence                            int
		description                         sql.NullString
		duration                            sql.NullInt64
		createdAt, updatedAt                time.Time
	)

	if err := s.Scan(&id, &sequence, &title, &description, &code, &duration, &url, &key, &uploader, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	video := models.NewVideo(sequence, title, code, uploader)
	video.SetID(id)
	video.SetURL(url)
	video.SetStorageKey(key)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)
	if description.Valid {
		d := description.String
		video.SetDescription(&d)
	}
	if duration.Valid {
		d := int(duration.Int64)
		video.SetDuration(&d)
	}
	return video, nil
}

func expectOne(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
