package absence

import (
	"context"
	"errors"
	"time"
)

// Validation errors mapped to response codes by the handlers.
var (
	ErrInvalidTipo   = errors.New("invalid reason category")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyReason   = errors.New("justification required")
	ErrInvalidStatus = errors.New("review status must be aprovada or rejeitada")
	ErrAlreadyDone   = errors.New("absence already reviewed")
)

// Service applies submission and review rules over the repository.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Submit validates and stores a new pending absence. All validation runs
// before any persistence; a rejected submission writes nothing.
func (s *Service) Submit(ctx context.Context, email, day, tipo, justificativa string, linkDocumento *string) (Absence, error) {
	if !ValidTipo(tipo) {
		return Absence{}, ErrInvalidTipo
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return Absence{}, ErrInvalidDate
	}
	if justificativa == "" {
		return Absence{}, ErrEmptyReason
	}
	return s.repo.Insert(ctx, Absence{
		UserEmail:     email,
		Day:           day,
		Tipo:          tipo,
		Justificativa: justificativa,
		LinkDocumento: linkDocumento,
	})
}

// Review transitions a pending absence to aprovada or rejeitada. The
// handler checked beforehand that the reviewer's scope covers the owner.
func (s *Service) Review(ctx context.Context, id, status string, motivo *string, reviewer string) (Absence, error) {
	if status != StatusAprovada && status != StatusRejeitada {
		return Absence{}, ErrInvalidStatus
	}
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Absence{}, err
	}
	if a.Status != StatusPendente {
		return Absence{}, ErrAlreadyDone
	}
	if err := s.repo.Review(ctx, id, status, motivo, reviewer); err != nil {
		return Absence{}, err
	}
	return s.repo.Get(ctx, id)
}

// Get returns one absence.
func (s *Service) Get(ctx context.Context, id string) (Absence, error) {
	return s.repo.Get(ctx, id)
}

// ListByUser returns the caller's own absences.
func (s *Service) ListByUser(ctx context.Context, email string) ([]Absence, error) {
	return s.repo.ListByUser(ctx, email)
}

// ListAll returns every absence for scope filtering by the caller.
func (s *Service) ListAll(ctx context.Context) ([]Absence, error) {
	return s.repo.ListAll(ctx)
}
