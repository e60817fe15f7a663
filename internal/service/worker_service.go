package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"campuscare/internal/models"
	"campuscare/internal/repository"
	"campuscare/internal/utils"
)

// WorkerService covers administrator management of worker accounts.
type WorkerService struct {
	users repository.UserRepository
}

func NewWorkerService(users repository.UserRepository) *WorkerService {
	return &WorkerService{users: users}
}

// Add creates a worker account in the given department, starting Available.
func (s *WorkerService) Add(ctx context.Context, actor Actor, name, email, password, department string) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	department = strings.TrimSpace(department)
	if name == "" || email == "" || password == "" || department == "" {
		return nil, ErrInvalidInput
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:       name,
		Email:      email,
		Role:       models.RoleWorker,
		Department: department,
		Status:     models.WorkerAvailable,
	}
	if err := s.users.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a worker account. Requests assigned to the worker keep
// their rows; the repository clears the worker reference first.
func (s *WorkerService) Delete(ctx context.Context, actor Actor, workerID int64) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if err := s.users.DeleteWorker(ctx, workerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns workers with open-assignment counts, optionally scoped to a
// department.
func (s *WorkerService) List(ctx context.Context, actor Actor, department string) ([]models.WorkerSummary, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.users.ListWorkers(ctx, department)
}
