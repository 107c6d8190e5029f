package users

import (
	"context"
	"errors"

	"ponto/internal/hierarchy"
)

// Sentinel errors the handlers map to response codes.
var (
	ErrNotFound          = errors.New("user not found")
	ErrUnknownLevel      = errors.New("unknown level")
	ErrLevelNotAssigned  = errors.New("level not assigned to user")
	ErrNoLevels          = errors.New("at least one level required")
	ErrUserInactive      = errors.New("user is inactive")
	ErrInvalidCollabType = errors.New("invalid collaborator type")
)

// Service applies the user lifecycle rules over the repository.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// SignIn records a successful external sign-in. First sign-in creates
// the user as pending; later sign-ins refresh the display name.
func (s *Service) SignIn(ctx context.Context, email, name string) (User, error) {
	if email == "" {
		return User{}, errors.New("email required")
	}
	u, err := s.repo.Ensure(ctx, email, name)
	if err != nil {
		return User{}, err
	}
	if u.Status == StatusInactive {
		return User{}, ErrUserInactive
	}
	return u, nil
}

// Approve activates a pending user with the given level names.
func (s *Service) Approve(ctx context.Context, email string, levelNames []string, collaboratorType *string) (User, error) {
	if len(levelNames) == 0 {
		return User{}, ErrNoLevels
	}
	levels := make([]hierarchy.Level, 0, len(levelNames))
	for _, n := range levelNames {
		l, ok := hierarchy.ParseLevel(n)
		if !ok {
			return User{}, ErrUnknownLevel
		}
		levels = append(levels, l)
	}
	if collaboratorType != nil {
		if *collaboratorType != CollaboratorTeaching && *collaboratorType != CollaboratorAdministrative {
			return User{}, ErrInvalidCollabType
		}
	}
	if err := s.repo.Approve(ctx, email, levels, collaboratorType); err != nil {
		return User{}, err
	}
	return s.repo.Get(ctx, email)
}

// Deactivate sets a user inactive.
func (s *Service) Deactivate(ctx context.Context, email string) error {
	return s.repo.Deactivate(ctx, email)
}

// SwitchLevel changes the active level. The requested level must already
// be in the user's assigned set; switching never touches the assignment.
func (s *Service) SwitchLevel(ctx context.Context, email, requested string) (User, error) {
	level, ok := hierarchy.ParseLevel(requested)
	if !ok {
		return User{}, ErrUnknownLevel
	}
	u, err := s.repo.Get(ctx, email)
	if err != nil {
		return User{}, err
	}
	if !hierarchy.Contains(u.Levels, level) {
		return User{}, ErrLevelNotAssigned
	}
	if err := s.repo.SetActiveLevel(ctx, email, level); err != nil {
		return User{}, err
	}
	u.ActiveLevel = level
	return u, nil
}

// SetWorkSchedule stores the expected work schedule for a user.
func (s *Service) SetWorkSchedule(ctx context.Context, email, schedule string) error {
	if schedule == "" {
		return errors.New("schedule required")
	}
	return s.repo.SetWorkSchedule(ctx, email, schedule)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, email string) (User, error) {
	return s.repo.Get(ctx, email)
}
