package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuscare/internal/models"
)

func pendingRequest() *models.Request {
	return &models.Request{
		ID:           1,
		StudentID:    10,
		Title:        "Broken light",
		Location:     "Block A",
		Status:       models.StatusPending,
		Priority:     models.PriorityHigh,
		Description:  "Corridor light flickering",
		StudentName:  "Asha",
		StudentEmail: "asha@campus.edu",
	}
}

func newTestWorkflow(requests *fakeRequestRepo, users *fakeUserRepo, d *recorderDispatcher) *Workflow {
	return NewWorkflow(requests, users, d, "static/uploads", zerolog.Nop())
}

func TestAssignNotifiesStudentAndWorkerOnStatusChange(t *testing.T) {
	requests := newFakeRequestRepo(pendingRequest())
	users := newFakeUserRepo(
		&models.User{ID: 7, Name: "Ravi", Email: "ravi@campus.edu", Role: models.RoleWorker, Department: "Electrical", Status: models.WorkerAvailable},
	)
	d := &recorderDispatcher{deliver: true}
	w := newTestWorkflow(requests, users, d)

	// The fake repo has no JOIN, so emulate the projection the re-read
	// would return after assignment.
	requests.requests[1].WorkerName = "Ravi"
	requests.requests[1].WorkerEmail = "ravi@campus.edu"

	updated, err := w.Assign(context.Background(), Actor{ID: 1, Role: models.RoleAdmin}, 1, AssignInput{
		WorkerID:   7,
		Department: "Electrical",
		Status:     models.StatusInProgress,
		Notes:      "go",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, int64(7), updated.WorkerID)
	assert.Equal(t, []models.Availability{models.WorkerAssigned}, users.availability[7])

	require.Equal(t, 2, d.callCount())
	assert.Equal(t, int64(10), d.calls[0].msg.RecipientID)
	assert.Equal(t, int64(7), d.calls[1].msg.RecipientID)
	assert.Equal(t, int64(1), d.calls[0].requestID)
}

func TestAssignSameStatusSkipsNotificationButPersists(t *testing.T) {
	requests := newFakeRequestRepo(pendingRequest())
	users := newFakeUserRepo(
		&models.User{ID: 7, Role: models.RoleWorker, Email: "ravi@campus.edu"},
	)
	d := &recorderDispatcher{deliver: true}
	w := newTestWorkflow(requests, users, d)

	updated, err := w.Assign(context.Background(), Actor{ID: 1, Role: models.RoleAdmin}, 1, AssignInput{
		WorkerID:   7,
		Department: "Electrical",
		Status:     models.StatusPending, // unchanged
		Notes:      "triage later",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, d.callCount(), "no notification for a same-status write")
	assert.Equal(t, "Electrical", updated.Department)
	assert.Equal(t, "triage later", updated.Notes)
	// Worker still flips to Assigned even without a status change.
	assert.Equal(t, []models.Availability{models.WorkerAssigned}, users.availability[7])
}

func TestAssignRejectsNonAdmin(t *testing.T) {
	w := newTestWorkflow(newFakeRequestRepo(pendingRequest()), newFakeUserRepo(), &recorderDispatcher{})
	_, err := w.Assign(context.Background(), Actor{ID: 10, Role: models.RoleStudent}, 1, AssignInput{Status: models.StatusInProgress})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssignUnknownRequest(t *testing.T) {
	w := newTestWorkflow(newFakeRequestRepo(), newFakeUserRepo(), &recorderDispatcher{})
	_, err := w.Assign(context.Background(), Actor{ID: 1, Role: models.RoleAdmin}, 42, AssignInput{Status: models.StatusInProgress})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignRejectsUnknownStatus(t *testing.T) {
	w := newTestWorkflow(newFakeRequestRepo(pendingRequest()), newFakeUserRepo(), &recorderDispatcher{})
	_, err := w.Assign(context.Background(), Actor{ID: 1, Role: models.RoleAdmin}, 1, AssignInput{Status: "Archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatusCompletedResetsWorkerAvailability(t *testing.T) {
	req := pendingRequest()
	req.Status = models.StatusInProgress
	req.WorkerID = 7
	req.WorkerEmail = "ravi@campus.edu"
	requests := newFakeRequestRepo(req)
	users := newFakeUserRepo(&models.User{ID: 7, Role: models.RoleWorker, Status: models.WorkerAssigned})
	d := &recorderDispatcher{deliver: true}
	w := newTestWorkflow(requests, users, d)

	updated, err := w.UpdateStatus(context.Background(), Actor{ID: 7, Role: models.RoleWorker}, 1,
		models.StatusCompleted, "replaced fixture", "evidence.png")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "evidence.png", updated.WorkerImage)
	assert.Equal(t, []models.Availability{models.WorkerAvailable}, users.availability[7],
		"availability reset exactly once")
	require.Equal(t, 2, d.callCount())
	assert.Equal(t, "static/uploads/evidence.png", d.calls[0].msg.AttachmentPath)
}

func TestUpdateStatusRejectsUnassignedWorker(t *testing.T) {
	req := pendingRequest()
	req.WorkerID = 7
	w := newTestWorkflow(newFakeRequestRepo(req), newFakeUserRepo(), &recorderDispatcher{})

	_, err := w.UpdateStatus(context.Background(), Actor{ID: 8, Role: models.RoleWorker}, 1,
		models.StatusInProgress, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusDispatchFailureDoesNotFailOperation(t *testing.T) {
	req := pendingRequest()
	req.WorkerID = 7
	requests := newFakeRequestRepo(req)
	users := newFakeUserRepo(&models.User{ID: 7, Role: models.RoleWorker})
	d := &recorderDispatcher{deliver: false} // transport down
	w := newTestWorkflow(requests, users, d)

	updated, err := w.UpdateStatus(context.Background(), Actor{ID: 7, Role: models.RoleWorker}, 1,
		models.StatusInProgress, "on it", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status, "status change durable despite failed dispatch")
	assert.Equal(t, 2, d.callCount())
}

func TestUpdateStatusKeepsEvidenceWhenNotSupplied(t *testing.T) {
	req := pendingRequest()
	req.Status = models.StatusInProgress
	req.WorkerID = 7
	req.WorkerImage = "before.png"
	requests := newFakeRequestRepo(req)
	d := &recorderDispatcher{deliver: true}
	w := newTestWorkflow(requests, newFakeUserRepo(&models.User{ID: 7, Role: models.RoleWorker}), d)

	updated, err := w.UpdateStatus(context.Background(), Actor{ID: 7, Role: models.RoleWorker}, 1,
		models.StatusInProgress, "still going", "")
	require.NoError(t, err)
	assert.Equal(t, "before.png", updated.WorkerImage)
	assert.Equal(t, 0, d.callCount(), "unchanged status must not notify")
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	requests := newFakeRequestRepo()
	w := newTestWorkflow(requests, newFakeUserRepo(), &recorderDispatcher{})

	req, err := w.Submit(context.Background(), Actor{ID: 10, Role: models.RoleStudent}, SubmitInput{
		Title:       "Leaky tap",
		Location:    "Hostel 3",
		Priority:    models.PriorityLow,
		Description: "Drips all night",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, int64(10), req.StudentID)

	_, err = w.Submit(context.Background(), Actor{ID: 10, Role: models.RoleStudent}, SubmitInput{Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListScopedByRole(t *testing.T) {
	mine := pendingRequest()
	other := pendingRequest()
	other.ID = 2
	other.StudentID = 11
	other.WorkerID = 7
	requests := newFakeRequestRepo(mine, other)
	w := newTestWorkflow(requests, newFakeUserRepo(), &recorderDispatcher{})

	student, err := w.List(context.Background(), Actor{ID: 10, Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Len(t, student, 1)

	worker, err := w.List(context.Background(), Actor{ID: 7, Role: models.RoleWorker})
	require.NoError(t, err)
	assert.Len(t, worker, 1)

	admin, err := w.List(context.Background(), Actor{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}
