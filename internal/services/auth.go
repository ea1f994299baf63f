package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/repositories"
	"github.com/desertthunder/studyous/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

const passwordSpecials = "@$!%*?&"

// AuthService manages accounts and the on-disk login session.
type AuthService struct {
	users       *repositories.UserRepository
	sessionPath string
	ttl         time.Duration
	logger      *log.Logger
	now         func() time.Time
	cost        int
}

// NewAuthService creates an [AuthService] storing its session at cfg.Path.
func NewAuthService(users *repositories.UserRepository, cfg shared.SessionConfig, logger *log.Logger) *AuthService {
	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		sessionPath: cfg.Path,
		ttl:         ttl,
		logger:      shared.WithLogger(logger, "service", "auth"),
		now:         time.Now,
		cost:        bcrypt.DefaultCost,
	}
}

// ValidatePassword checks the password policy: at least 8 characters with at least one lowercase
// letter, one uppercase letter, one digit and one of @$!%*?&. Other characters are allowed.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", shared.ErrWeakPassword)
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	if !lower || !upper || !digit || !special {
		return fmt.Errorf("%w: needs a lowercase letter, an uppercase letter, a digit and one of %s",
			shared.ErrWeakPassword, passwordSpecials)
	}
	return nil
}

// Signup validates req and creates the account.
func (s *AuthService) Signup(req SignupRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.Email == "" || req.Password == "" || req.ConfirmPassword == "" ||
		req.FirstName == "" || req.LastName == "" || req.Username == "" {
		return nil, fmt.Errorf("%w: all fields are required", shared.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", shared.ErrInvalidInput, req.Email)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", shared.ErrInvalidInput)
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrUsernameTaken, req.Username)
	} else if !errors.Is(err, shared.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(0, req.Email, req.Username, req.FirstName, req.LastName)
	user.SetPasswordHash(string(hash))
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user", user.ID(), "username", user.Username())
	return user, nil
}

// Login checks the credentials and writes a new session file.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: invalid email or password", shared.ErrAuthFailed)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", shared.ErrAuthFailed)
	}

	session := Session{UserID: user.ID(), Username: user.Username(), ExpiresAt: s.now().Add(s.ttl)}
	if err := s.writeSession(session); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "user", user.ID())
	return user, nil
}

// Logout removes the session file. Logging out without a session is not an error.
func (s *AuthService) Logout() error {
	if err := os.Remove(s.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Session returns the stored session when present and unexpired.
func (s *AuthService) Session() (*Session, error) {
	data, err := os.ReadFile(s.sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: corrupt session file", shared.ErrNotAuthenticated)
	}
	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrSessionExpired)
	}
	return &session, nil
}

// CurrentUser resolves the logged-in user, returning [shared.ErrNotAuthenticated] when there is none.
func (s *AuthService) CurrentUser() (*models.User, error) {
	session, err := s.Session()
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(session.UserID)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: account no longer exists", shared.ErrNotAuthenticated)
	}
	return user, err
}

func (s *AuthService) writeSession(session Session) error {
	data, err := shared.MarshalJSON(session, true)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if dir := filepath.Dir(s.sessionPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.sessionPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}
