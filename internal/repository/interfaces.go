package repository

import (
	"context"

	"campuscare/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	SetAvailability(ctx context.Context, id int64, status models.Availability) error
	FirstAdmin(ctx context.Context) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	ListWorkers(ctx context.Context, department string) ([]models.WorkerSummary, error)
	DeleteWorker(ctx context.Context, id int64) error
}

type RequestRepository interface {
	Create(ctx context.Context, r *models.Request) error
	Get(ctx context.Context, id int64) (*models.Request, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Request, error)
	ListByWorker(ctx context.Context, workerID int64) ([]models.Request, error)
	ListAll(ctx context.Context) ([]models.Request, error)
	UpdateAssignment(ctx context.Context, id, workerID int64, department string, status models.RequestStatus, notes string) error
	UpdateProgress(ctx context.Context, id int64, status models.RequestStatus, workerNotes, workerImage string) error
	CountByStatus(ctx context.Context, status models.RequestStatus) (int, error)
}

type LostItemRepository interface {
	Create(ctx context.Context, it *models.LostItem) error
	Get(ctx context.Context, id int64) (*models.LostItem, error)
	List(ctx context.Context) ([]models.LostItem, error)
	MarkCollected(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context) ([]models.Notification, error)
}
