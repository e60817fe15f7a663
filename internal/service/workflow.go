package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"campuscare/internal/models"
	"campuscare/internal/notify"
	"campuscare/internal/repository"
)

// Dispatcher delivers a composed message and records its log row. The
// returned flag reports delivery only; failures never surface as errors.
type Dispatcher interface {
	Dispatch(ctx context.Context, requestID int64, msg notify.Message) bool
}

// Workflow applies status and assignment changes to service requests and
// triggers their side effects: worker availability flips and notifications.
// All persistence happens before any dispatch attempt, so a failing mail
// transport can never roll back a committed change.
type Workflow struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher Dispatcher
	uploadDir  string
	log        zerolog.Logger
}

func NewWorkflow(requests repository.RequestRepository, users repository.UserRepository, dispatcher Dispatcher, uploadDir string, log zerolog.Logger) *Workflow {
	return &Workflow{requests: requests, users: users, dispatcher: dispatcher, uploadDir: uploadDir, log: log}
}

// SubmitInput are the student-supplied fields of a new request.
type SubmitInput struct {
	Title       string
	Location    string
	Priority    models.Priority
	Description string
	ImagePath   string
}

// Submit files a new request for the acting student. New requests always
// start Pending.
func (w *Workflow) Submit(ctx context.Context, actor Actor, in SubmitInput) (*models.Request, error) {
	if actor.Role != models.RoleStudent {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Description) == "" || !in.Priority.Valid() {
		return nil, ErrInvalidInput
	}

	req := &models.Request{
		StudentID:   actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Location:    strings.TrimSpace(in.Location),
		Status:      models.StatusPending,
		Priority:    in.Priority,
		Description: strings.TrimSpace(in.Description),
		ImagePath:   in.ImagePath,
	}
	if err := w.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// AssignInput are the admin-controlled fields written by Assign.
type AssignInput struct {
	WorkerID   int64 // 0 clears the assignment
	Department string
	Status     models.RequestStatus
	Notes      string
}

// Assign writes the assignment fields on a request and, only when the status
// actually changed, notifies the requester and the assigned worker. A
// supplied worker is marked Assigned unconditionally, even when the status
// stayed the same.
func (w *Workflow) Assign(ctx context.Context, actor Actor, requestID int64, in AssignInput) (*models.Request, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidInput
	}

	prev, err := w.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, ErrNotFound
	}

	if err := w.requests.UpdateAssignment(ctx, requestID, in.WorkerID, in.Department, in.Status, in.Notes); err != nil {
		return nil, err
	}
	if in.WorkerID != 0 {
		if err := w.users.SetAvailability(ctx, in.WorkerID, models.WorkerAssigned); err != nil {
			return nil, err
		}
	}

	// Re-read after commit so the notification snapshot carries the newly
	// joined worker identity.
	updated, err := w.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if prev.Status != in.Status {
		w.notifyStatusChange(ctx, updated, in.Status, in.Notes, "")
	}
	return updated, nil
}

// UpdateStatus applies a worker's progress update. Only the currently
// assigned worker may call it. Evidence, when supplied, is persisted and
// attached to the requester's notification; on Completed the worker becomes
// Available again.
func (w *Workflow) UpdateStatus(ctx context.Context, actor Actor, requestID int64, status models.RequestStatus, workerNotes, evidenceImage string) (*models.Request, error) {
	if actor.Role != models.RoleWorker {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	prev, err := w.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, ErrNotFound
	}
	if prev.WorkerID != actor.ID {
		return nil, ErrForbidden
	}

	if err := w.requests.UpdateProgress(ctx, requestID, status, workerNotes, evidenceImage); err != nil {
		return nil, err
	}
	if status == models.StatusCompleted {
		if err := w.users.SetAvailability(ctx, prev.WorkerID, models.WorkerAvailable); err != nil {
			return nil, err
		}
	}

	updated, err := w.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if prev.Status != status {
		attachment := ""
		if evidenceImage != "" {
			attachment = filepath.Join(w.uploadDir, evidenceImage)
		}
		w.notifyStatusChange(ctx, updated, status, workerNotes, attachment)
	}
	return updated, nil
}

// notifyStatusChange composes and dispatches best-effort. Dispatch outcomes
// are recorded by the dispatcher; nothing here can fail the operation.
func (w *Workflow) notifyStatusChange(ctx context.Context, req *models.Request, status models.RequestStatus, notes, attachment string) {
	for _, msg := range notify.StatusUpdate(req, status, notes, attachment) {
		delivered := w.dispatcher.Dispatch(ctx, req.ID, msg)
		w.log.Debug().
			Int64("request", req.ID).
			Int64("recipient", msg.RecipientID).
			Bool("delivered", delivered).
			Msg("status notification dispatched")
	}
}

// Get returns a request visible to the actor: students see their own,
// workers their assignments, admins everything.
func (w *Workflow) Get(ctx context.Context, actor Actor, requestID int64) (*models.Request, error) {
	req, err := w.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleStudent:
		if req.StudentID != actor.ID {
			return nil, ErrForbidden
		}
	case models.RoleWorker:
		if req.WorkerID != actor.ID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}
	return req, nil
}

// List returns the requests visible to the actor, newest first.
func (w *Workflow) List(ctx context.Context, actor Actor) ([]models.Request, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return w.requests.ListAll(ctx)
	case models.RoleStudent:
		return w.requests.ListByStudent(ctx, actor.ID)
	case models.RoleWorker:
		return w.requests.ListByWorker(ctx, actor.ID)
	}
	return nil, ErrForbidden
}
