package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/studyous/internal/models"
	"github.com/desertthunder/studyous/internal/repositories"
	"github.com/desertthunder/studyous/internal/shared"
)

// ProfileService reads public profiles and applies owner edits.
type ProfileService struct {
	users  *repositories.UserRepository
	auth   *AuthService
	logger *log.Logger
}

// NewProfileService creates a [ProfileService].
func NewProfileService(users *repositories.UserRepository, auth *AuthService, logger *log.Logger) *ProfileService {
	return &ProfileService{users: users, auth: auth, logger: shared.WithLogger(logger, "service", "profiles")}
}

// Get returns the public profile of a user.
func (s *ProfileService) Get(id string) (models.Profile, error) {
	user, err := s.users.Get(id)
	if err != nil {
		return models.Profile{}, err
	}
	return user.Profile(), nil
}

// IsOwner reports whether id belongs to the logged-in user.
func (s *ProfileService) IsOwner(id string) bool {
	session, err := s.auth.Session()
	return err == nil && session.UserID == id
}

// Update changes the profile of user id. Only the logged-in owner may do this.
func (s *ProfileService) Update(id string, update ProfileUpdate) (models.Profile, error) {
	current, err := s.auth.CurrentUser()
	if err != nil {
		return models.Profile{}, err
	}
	if current.ID() != id {
		return models.Profile{}, fmt.Errorf("%w: cannot edit another user's profile", shared.ErrForbidden)
	}

	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)
	update.Username = strings.TrimSpace(update.Username)
	if update.FirstName == "" || update.LastName == "" || update.Username == "" {
		return models.Profile{}, fmt.Errorf("%w: first name, last name and username are required", shared.ErrInvalidInput)
	}

	if !strings.EqualFold(update.Username, current.Username()) {
		existing, err := s.users.GetByUsername(update.Username)
		switch {
		case err == nil && existing.ID() != current.ID():
			return models.Profile{}, fmt.Errorf("%w: %s", shared.ErrUsernameTaken, update.Username)
		case err != nil && !errors.Is(err, shared.ErrUserNotFound):
			return models.Profile{}, err
		}
	}

	current.SetFirstName(update.FirstName)
	current.SetLastName(update.LastName)
	current.SetUsername(update.Username)
	if err := s.users.Update(current); err != nil {
		return models.Profile{}, err
	}

	s.logger.Info("profile updated", "user", current.ID())
	return current.Profile(), nil
}
