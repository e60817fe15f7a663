package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"

	"campuscare/internal/models"
	"campuscare/internal/notify"
)

// In-memory repository fakes shared by the service tests.

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*models.Request
	countErr error
}

func newFakeRequestRepo(reqs ...*models.Request) *fakeRequestRepo {
	f := &fakeRequestRepo{requests: map[int64]*models.Request{}, nextID: 1}
	for _, r := range reqs {
		f.requests[r.ID] = r
		if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
	}
	return f
}

func (f *fakeRequestRepo) Create(_ context.Context, r *models.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = f.nextID
	f.nextID++
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) Get(_ context.Context, id int64) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) ListByStudent(_ context.Context, studentID int64) ([]models.Request, error) {
	return f.listWhere(func(r *models.Request) bool { return r.StudentID == studentID }), nil
}

func (f *fakeRequestRepo) ListByWorker(_ context.Context, workerID int64) ([]models.Request, error) {
	return f.listWhere(func(r *models.Request) bool { return r.WorkerID == workerID }), nil
}

func (f *fakeRequestRepo) ListAll(_ context.Context) ([]models.Request, error) {
	return f.listWhere(func(*models.Request) bool { return true }), nil
}

func (f *fakeRequestRepo) listWhere(keep func(*models.Request) bool) []models.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Request
	for _, r := range f.requests {
		if keep(r) {
			out = append(out, *r)
		}
	}
	return out
}

func (f *fakeRequestRepo) UpdateAssignment(_ context.Context, id, workerID int64, department string, status models.RequestStatus, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return errors.New("no rows")
	}
	r.WorkerID = workerID
	r.Department = department
	r.Status = status
	r.Notes = notes
	return nil
}

func (f *fakeRequestRepo) UpdateProgress(_ context.Context, id int64, status models.RequestStatus, workerNotes, workerImage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return errors.New("no rows")
	}
	r.Status = status
	r.WorkerNotes = workerNotes
	if workerImage != "" {
		r.WorkerImage = workerImage
	}
	return nil
}

func (f *fakeRequestRepo) CountByStatus(_ context.Context, status models.RequestStatus) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.listWhere(func(r *models.Request) bool { return r.Status == status })), nil
}

type fakeUserRepo struct {
	mu           sync.Mutex
	nextID       int64
	users        map[int64]*models.User
	hashes       map[int64]string
	availability map[int64][]models.Availability // every SetAvailability call, in order
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{
		users:        map[int64]*models.User{},
		hashes:       map[int64]string{},
		availability: map[int64][]models.Availability{},
		nextID:       1,
	}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUserRepo) withHash(id int64, hash string) *fakeUserRepo {
	f.hashes[id] = hash
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	f.hashes[u.ID] = passwordHash
	return nil
}

func (f *fakeUserRepo) GetByEmailAndRole(_ context.Context, email string, role models.Role) (*models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			cp := *u
			return &cp, f.hashes[u.ID], nil
		}
	}
	return nil, "", nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hashes[id] = passwordHash
	return nil
}

func (f *fakeUserRepo) SetAvailability(_ context.Context, id int64, status models.Availability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availability[id] = append(f.availability[id], status)
	if u, ok := f.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (f *fakeUserRepo) FirstAdmin(_ context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var first *models.User
	for _, u := range f.users {
		if u.Role != models.RoleAdmin {
			continue
		}
		if first == nil || u.ID < first.ID {
			first = u
		}
	}
	if first == nil {
		return nil, nil
	}
	cp := *first
	return &cp, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListWorkers(_ context.Context, department string) ([]models.WorkerSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WorkerSummary
	for _, u := range f.users {
		if u.Role != models.RoleWorker {
			continue
		}
		if department != "" && u.Department != department {
			continue
		}
		out = append(out, models.WorkerSummary{User: *u})
	}
	return out, nil
}

func (f *fakeUserRepo) DeleteWorker(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.Role != models.RoleWorker {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

type fakeLostItemRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.LostItem
}

func newFakeLostItemRepo(items ...*models.LostItem) *fakeLostItemRepo {
	f := &fakeLostItemRepo{items: map[int64]*models.LostItem{}, nextID: 1}
	for _, it := range items {
		f.items[it.ID] = it
		if it.ID >= f.nextID {
			f.nextID = it.ID + 1
		}
	}
	return f
}

func (f *fakeLostItemRepo) Create(_ context.Context, it *models.LostItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it.ID = f.nextID
	f.nextID++
	it.Status = models.ItemUnclaimed
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeLostItemRepo) Get(_ context.Context, id int64) (*models.LostItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeLostItemRepo) List(_ context.Context) ([]models.LostItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LostItem
	for _, it := range f.items {
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeLostItemRepo) MarkCollected(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return errors.New("no rows")
	}
	it.Status = models.ItemCollected
	return nil
}

func (f *fakeLostItemRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return errors.New("no rows")
	}
	delete(f.items, id)
	return nil
}

// recorderDispatcher records every dispatch and returns a fixed delivery
// outcome, standing in for the real dispatcher.
type dispatchCall struct {
	requestID int64
	msg       notify.Message
}

type recorderDispatcher struct {
	mu      sync.Mutex
	deliver bool
	calls   []dispatchCall
}

func (d *recorderDispatcher) Dispatch(_ context.Context, requestID int64, msg notify.Message) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{requestID: requestID, msg: msg})
	return d.deliver
}

func (d *recorderDispatcher) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}
