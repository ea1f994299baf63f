package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(email, username string) *models.User {
	user := models.NewUser(0, email, username, "Test", "User")
	user.SetPasswordHash("$2a$10$notarealhashbutlongenough")
	return user
}

func createTestUser(t *testing.T, repo *UserRepository, email, username string) *models.User {
	t.Helper()
	user := newTestUser(email, username)
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "videos")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for unknown table")
	}
}

// roundTrip creates, reads, lists and deletes m through the generic repository interface.
func roundTrip[T models.Model](t *testing.T, repo models.Repository[T], m T, notFound error) {
	t.Helper()

	if err := repo.Create(m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := repo.Get(m.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID() != m.ID() {
		t.Errorf("expected ID %s, got %s", m.ID(), got.ID())
	}

	all, err := repo.List(map[string]any{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) == 0 {
		t.Error("expected List to include the created model")
	}

	if err := repo.Delete(m.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(m.ID()); !errors.Is(err, notFound) {
		t.Errorf("expected %v after delete, got %v", notFound, err)
	}
}

func TestRepositoryInterface(t *testing.T) {
	t.Run("users", func(t *testing.T) {
		db := setupTestDB(t)
		roundTrip[*models.User](t, NewUserRepository(db), newTestUser("iface@example.com", "iface"), shared.ErrUserNotFound)
	})

	t.Run("videos", func(t *testing.T) {
		db := setupTestDB(t)
		uploader := createTestUser(t, NewUserRepository(db), "uploader@example.com", "uploader")
		video := newTestVideo("Pointers", "CSCE 121", uploader.ID(), time.Now())
		roundTrip[*models.Video](t, NewVideoRepository(db), video, shared.ErrVideoNotFound)
	})
}

func TestUserRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com", "tester")

		if user.ID() == "" {
			t.Error("user ID should be set after creation")
		}
		if user.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", user.Sequence())
		}
	})

	t.Run("Create rejects invalid user", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := newTestUser("not-an-email", "tester")

		err := repo.Create(user)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Create rejects duplicate username", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		createTestUser(t, repo, "one@example.com", "tester")

		err := repo.Create(newTestUser("two@example.com", "TESTER"))
		if !errors.Is(err, shared.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("Create rejects duplicate email", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		createTestUser(t, repo, "one@example.com", "first")

		err := repo.Create(newTestUser("ONE@example.com", "second"))
		if !errors.Is(err, shared.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com", "tester")

		retrieved, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}
		if retrieved.Email() != user.Email() {
			t.Errorf("expected email %s, got %s", user.Email(), retrieved.Email())
		}
		if retrieved.PasswordHash() != user.PasswordHash() {
			t.Error("expected password hash to round-trip")
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		_, err := repo.Get("nope")
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("GetByEmail & GetByUsername ignore case", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com", "tester")

		byEmail, err := repo.GetByEmail("TEST@example.com")
		if err != nil {
			t.Fatalf("GetByEmail failed: %v", err)
		}
		if byEmail.ID() != user.ID() {
			t.Errorf("expected %s, got %s", user.ID(), byEmail.ID())
		}

		byName, err := repo.GetByUsername("Tester")
		if err != nil {
			t.Fatalf("GetByUsername failed: %v", err)
		}
		if byName.ID() != user.ID() {
			t.Errorf("expected %s, got %s", user.ID(), byName.ID())
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com", "tester")

		retrieved, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		retrieved.SetFirstName("Ada")
		retrieved.SetUsername("ada")
		if err := repo.Update(retrieved); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		updated, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if updated.FirstName() != "Ada" || updated.Username() != "ada" {
			t.Errorf("expected updated profile, got %s/%s", updated.FirstName(), updated.Username())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := createTestUser(t, repo, "test@example.com", "tester")

		if err := repo.Delete(user.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if _, err := repo.Get(user.ID()); err == nil {
			t.Error("expected error when getting deleted user")
		}

		if err := repo.Delete(user.ID()); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		createTestUser(t, repo, "user1@example.com", "one")
		createTestUser(t, repo, "user2@example.com", "two")
		createTestUser(t, repo, "user3@example.com", "three")

		retrieved, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(retrieved) != 3 {
			t.Errorf("expected 3 users, got %d", len(retrieved))
		}

		filtered, err := repo.List(map[string]any{"email": "user2@example.com"})
		if err != nil {
			t.Fatalf("failed to list filtered users: %v", err)
		}
		if len(filtered) != 1 {
			t.Fatalf("expected 1 user, got %d", len(filtered))
		}
		if filtered[0].Email() != "user2@example.com" {
			t.Errorf("expected user2@example.com, got %s", filtered[0].Email())
		}
	})
}

func newTestVideo(title, course, uploader string, created time.Time) *models.Video {
	video := models.NewVideo(0, title, course, uploader)
	video.SetURL("http://127.0.0.1:3000/media/" + uploader + "/x.mp4")
	video.SetStorageKey(uploader + "/x.mp4")
	video.SetCreatedAt(created)
	video.SetUpdatedAt(created)
	return video
}

func TestVideoRepository(t *testing.T) {
	setup := func(t *testing.T) (*VideoRepository, *models.User) {
		db := setupTestDB(t)
		user := createTestUser(t, NewUserRepository(db), "up@example.com", "uploader")
		return NewVideoRepository(db), user
	}

	t.Run("Create & Get", func(t *testing.T) {
		repo, user := setup(t)
		video := newTestVideo("Recursion", "CSCE 121", user.ID(), time.Now())
		desc := "base cases"
		dur := 95
		video.SetDescription(&desc)
		video.SetDuration(&dur)

		if err := repo.Create(video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		got, err := repo.Get(video.ID())
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if got.Title() != "Recursion" || got.CourseCode() != "CSCE 121" {
			t.Errorf("unexpected video %s/%s", got.Title(), got.CourseCode())
		}
		if got.Description() == nil || *got.Description() != desc {
			t.Errorf("expected description %q, got %v", desc, got.Description())
		}
		if got.Duration() == nil || *got.Duration() != dur {
			t.Errorf("expected duration %d, got %v", dur, got.Duration())
		}
	})

	t.Run("optional fields stay null", func(t *testing.T) {
		repo, user := setup(t)
		video := newTestVideo("Loops", "CSCE 121", user.ID(), time.Now())

		if err := repo.Create(video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		got, err := repo.Get(video.ID())
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if got.Description() != nil {
			t.Errorf("expected nil description, got %q", *got.Description())
		}
		if got.Duration() != nil {
			t.Errorf("expected nil duration, got %d", *got.Duration())
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo, _ := setup(t)
		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound, got %v", err)
		}
	})

	t.Run("ListByCourse orders newest first and searches", func(t *testing.T) {
		repo, user := setup(t)
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		desc := "pointer arithmetic explained"
		videos := []*models.Video{
			newTestVideo("Arrays", "CSCE 121", user.ID(), base),
			newTestVideo("Pointers", "CSCE 121", user.ID(), base.Add(time.Hour)),
			newTestVideo("Structs", "CSCE 121", user.ID(), base.Add(2*time.Hour)),
			newTestVideo("Limits", "MATH 151", user.ID(), base.Add(3*time.Hour)),
		}
		videos[0].SetDescription(&desc)
		for _, v := range videos {
			if err := repo.Create(v); err != nil {
				t.Fatalf("failed to create video: %v", err)
			}
		}

		all, err := repo.ListByCourse("csce 121", "")
		if err != nil {
			t.Fatalf("ListByCourse failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 videos, got %d", len(all))
		}
		want := []string{"Structs", "Pointers", "Arrays"}
		for i, v := range all {
			if v.Title() != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], v.Title())
			}
		}

		found, err := repo.ListByCourse("CSCE 121", "POINTER")
		if err != nil {
			t.Fatalf("ListByCourse search failed: %v", err)
		}
		if len(found) != 2 {
			t.Fatalf("expected title and description matches, got %d", len(found))
		}
		if found[0].Title() != "Pointers" || found[1].Title() != "Arrays" {
			t.Errorf("unexpected search order: %s, %s", found[0].Title(), found[1].Title())
		}

		none, err := repo.ListByCourse("CSCE 121", "100%")
		if err != nil {
			t.Fatalf("ListByCourse wildcard search failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected wildcard characters to match literally, got %d", len(none))
		}
	})

	t.Run("ListByUploader", func(t *testing.T) {
		db := setupTestDB(t)
		users := NewUserRepository(db)
		repo := NewVideoRepository(db)
		a := createTestUser(t, users, "a@example.com", "a")
		b := createTestUser(t, users, "b@example.com", "b")

		for _, v := range []*models.Video{
			newTestVideo("One", "CSCE 121", a.ID(), time.Now()),
			newTestVideo("Two", "MATH 151", a.ID(), time.Now()),
			newTestVideo("Three", "MATH 151", b.ID(), time.Now()),
		} {
			if err := repo.Create(v); err != nil {
				t.Fatalf("failed to create video: %v", err)
			}
		}

		got, err := repo.ListByUploader(a.ID())
		if err != nil {
			t.Fatalf("ListByUploader failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 videos, got %d", len(got))
		}
	})

	t.Run("Update & Delete", func(t *testing.T) {
		repo, user := setup(t)
		video := newTestVideo("Draft", "CSCE 121", user.ID(), time.Now())
		if err := repo.Create(video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		dur := 30
		video.SetDuration(&dur)
		if err := repo.Update(video); err != nil {
			t.Fatalf("failed to update video: %v", err)
		}
		got, err := repo.Get(video.ID())
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if got.Duration() == nil || *got.Duration() != 30 {
			t.Errorf("expected duration 30, got %v", got.Duration())
		}

		if err := repo.Delete(video.ID()); err != nil {
			t.Fatalf("failed to delete video: %v", err)
		}
		if err := repo.Delete(video.ID()); !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound, got %v", err)
		}
	})

	t.Run("uploader must exist", func(t *testing.T) {
		repo, _ := setup(t)
		video := newTestVideo("Orphan", "CSCE 121", "missing-user", time.Now())
		if err := repo.Create(video); err == nil {
			t.Error("expected foreign key violation")
		}
	})
}
