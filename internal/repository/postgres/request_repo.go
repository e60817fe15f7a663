package postgres

import (
	"context"
	"strings"
	"time"

	"campuscare/internal/models"
	"campuscare/internal/repository"

	"github.com/jackc/pgx/v5"
)

type RequestRepo struct{ db DB }

func NewRequestRepo(db DB) repository.RequestRepository { return &RequestRepo{db: db} }

// requestColumns is the joined projection used by every read: the request row
// plus requester and worker identity resolved from users.
const requestColumns = `
	r.id, r.student_id, r.title, r.location, r.status, r.priority, r.description, r.date,
	COALESCE(r.worker_id, 0), COALESCE(r.department,''), COALESCE(r.notes,''),
	COALESCE(r.worker_notes,''), COALESCE(r.image_path,''), COALESCE(r.worker_image_path,''),
	COALESCE(s.name,''), COALESCE(s.email,''), COALESCE(w.name,''), COALESCE(w.email,'')`

const requestJoins = `
	FROM requests r
	LEFT JOIN users s ON r.student_id = s.id
	LEFT JOIN users w ON r.worker_id = w.id`

func scanRequest(row pgx.Row, r *models.Request) error {
	return row.Scan(
		&r.ID, &r.StudentID, &r.Title, &r.Location, &r.Status, &r.Priority, &r.Description, &r.Date,
		&r.WorkerID, &r.Department, &r.Notes,
		&r.WorkerNotes, &r.ImagePath, &r.WorkerImage,
		&r.StudentName, &r.StudentEmail, &r.WorkerName, &r.WorkerEmail,
	)
}

func (r *RequestRepo) Create(ctx context.Context, req *models.Request) error {
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO requests (student_id, title, location, status, priority, description, date, image_path)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`,
		req.StudentID, req.Title, req.Location, req.Status, req.Priority, req.Description,
		req.Date, nullIfEmpty(req.ImagePath)).
		Scan(&req.ID)
}

func (r *RequestRepo) Get(ctx context.Context, id int64) (*models.Request, error) {
	var req models.Request
	err := scanRequest(r.db.QueryRow(ctx, `SELECT`+requestColumns+requestJoins+` WHERE r.id = $1`, id), &req)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Request, error) {
	return r.list(ctx, ` WHERE r.student_id = $1 ORDER BY r.date DESC, r.id DESC`, studentID)
}

func (r *RequestRepo) ListByWorker(ctx context.Context, workerID int64) ([]models.Request, error) {
	return r.list(ctx, ` WHERE r.worker_id = $1 ORDER BY r.date DESC, r.id DESC`, workerID)
}

func (r *RequestRepo) ListAll(ctx context.Context) ([]models.Request, error) {
	return r.list(ctx, ` ORDER BY r.date DESC, r.id DESC`)
}

func (r *RequestRepo) list(ctx context.Context, tail string, args ...any) ([]models.Request, error) {
	rows, err := r.db.Query(ctx, `SELECT`+requestColumns+requestJoins+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Request
	for rows.Next() {
		var req models.Request
		if err := scanRequest(rows, &req); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// UpdateAssignment writes the admin-controlled fields in one statement.
// workerID 0 clears the assignment.
func (r *RequestRepo) UpdateAssignment(ctx context.Context, id, workerID int64, department string, status models.RequestStatus, notes string) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE requests SET worker_id=$1, department=$2, status=$3, notes=$4
		WHERE id=$5`,
		nullIfZero(workerID), nullIfEmpty(department), status, nullIfEmpty(notes), id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateProgress writes the worker-controlled fields. An empty workerImage
// leaves existing evidence untouched.
func (r *RequestRepo) UpdateProgress(ctx context.Context, id int64, status models.RequestStatus, workerNotes, workerImage string) error {
	var ct interface{ RowsAffected() int64 }
	var err error
	if strings.TrimSpace(workerImage) != "" {
		ct, err = r.db.Exec(ctx, `
			UPDATE requests SET status=$1, worker_notes=$2, worker_image_path=$3
			WHERE id=$4`, status, nullIfEmpty(workerNotes), workerImage, id)
	} else {
		ct, err = r.db.Exec(ctx, `
			UPDATE requests SET status=$1, worker_notes=$2
			WHERE id=$3`, status, nullIfEmpty(workerNotes), id)
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *RequestRepo) CountByStatus(ctx context.Context, status models.RequestStatus) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE status=$1`, status).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func nullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
