package postgres

import (
	"context"
	"strings"

	"campuscare/internal/models"
	"campuscare/internal/repository"

	"github.com/jackc/pgx/v5"
)

type UserRepo struct{ db DB }

func NewUserRepo(db DB) repository.UserRepository { return &UserRepo{db: db} }

// Create stores a new account (bcrypt hash in password_h) and fills in the
// generated id and creation time.
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_h, role, department, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		u.Name, u.Email, passwordHash, u.Role, nullIfEmpty(u.Department), nullIfEmpty(string(u.Status))).
		Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepo) GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, string, error) {
	var u models.User
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, COALESCE(department,''), COALESCE(status,''), password_h, created_at
		FROM users WHERE email=$1 AND role=$2`, email, role).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.Status, &ph, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, COALESCE(department,''), COALESCE(status,''), created_at
		FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.Status, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_h=$1 WHERE id=$2`, passwordHash, id)
	return err
}

func (r *UserRepo) SetAvailability(ctx context.Context, id int64, status models.Availability) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET status=$1 WHERE id=$2`, status, id)
	return err
}

// FirstAdmin returns the lowest-id administrator account, or nil when the
// store holds none (fresh or partially seeded database).
func (r *UserRepo) FirstAdmin(ctx context.Context) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, created_at
		FROM users WHERE role='Admin' ORDER BY id ASC LIMIT 1`).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, role, COALESCE(department,''), COALESCE(status,''), created_at
		FROM users WHERE role=$1 ORDER BY id ASC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListWorkers returns workers (optionally filtered by department) with the
// count of their non-completed assignments, for the admin triage view.
func (r *UserRepo) ListWorkers(ctx context.Context, department string) ([]models.WorkerSummary, error) {
	sql := `
		SELECT u.id, u.name, u.email, u.role, COALESCE(u.department,''), COALESCE(u.status,''), u.created_at,
		       COUNT(r.id)
		FROM users u
		LEFT JOIN requests r ON u.id = r.worker_id AND r.status != 'Completed'
		WHERE u.role = 'Worker'`
	args := []any{}
	if d := strings.TrimSpace(department); d != "" {
		args = append(args, d)
		sql += ` AND u.department = $1`
	}
	sql += ` GROUP BY u.id ORDER BY u.id ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WorkerSummary
	for rows.Next() {
		var w models.WorkerSummary
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.Role, &w.Department, &w.Status, &w.CreatedAt, &w.AssignedRequests); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteWorker unassigns the worker from any request first so request rows
// survive account deletion, then removes the account. Only Worker accounts
// are deletable.
func (r *UserRepo) DeleteWorker(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE requests SET worker_id = NULL WHERE worker_id=$1`, id); err != nil {
		return err
	}
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1 AND role='Worker'`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
