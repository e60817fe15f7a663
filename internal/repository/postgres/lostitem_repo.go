package postgres

import (
	"context"
	"time"

	"campuscare/internal/models"
	"campuscare/internal/repository"

	"github.com/jackc/pgx/v5"
)

type LostItemRepo struct{ db DB }

func NewLostItemRepo(db DB) repository.LostItemRepository { return &LostItemRepo{db: db} }

func (r *LostItemRepo) Create(ctx context.Context, it *models.LostItem) error {
	if it.DateFound.IsZero() {
		it.DateFound = time.Now()
	}
	it.Status = models.ItemUnclaimed
	return r.db.QueryRow(ctx, `
		INSERT INTO lost_items (student_id, item_name, description, location_found, date_found, image_path, contact_info, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`,
		it.StudentID, it.ItemName, it.Description, it.LocationFound, it.DateFound,
		nullIfEmpty(it.ImagePath), it.ContactInfo, it.Status).
		Scan(&it.ID)
}

func (r *LostItemRepo) Get(ctx context.Context, id int64) (*models.LostItem, error) {
	var it models.LostItem
	err := r.db.QueryRow(ctx, `
		SELECT li.id, li.student_id, li.item_name, li.description, li.location_found, li.date_found,
		       COALESCE(li.image_path,''), COALESCE(li.contact_info,''), li.status,
		       COALESCE(u.name,''), COALESCE(u.email,'')
		FROM lost_items li
		LEFT JOIN users u ON li.student_id = u.id
		WHERE li.id = $1`, id).
		Scan(&it.ID, &it.StudentID, &it.ItemName, &it.Description, &it.LocationFound, &it.DateFound,
			&it.ImagePath, &it.ContactInfo, &it.Status, &it.ReporterName, &it.ReporterEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *LostItemRepo) List(ctx context.Context) ([]models.LostItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT li.id, li.student_id, li.item_name, li.description, li.location_found, li.date_found,
		       COALESCE(li.image_path,''), COALESCE(li.contact_info,''), li.status,
		       COALESCE(u.name,''), COALESCE(u.email,'')
		FROM lost_items li
		LEFT JOIN users u ON li.student_id = u.id
		ORDER BY li.date_found DESC, li.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LostItem
	for rows.Next() {
		var it models.LostItem
		if err := rows.Scan(&it.ID, &it.StudentID, &it.ItemName, &it.Description, &it.LocationFound, &it.DateFound,
			&it.ImagePath, &it.ContactInfo, &it.Status, &it.ReporterName, &it.ReporterEmail); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *LostItemRepo) MarkCollected(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `UPDATE lost_items SET status='Collected' WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *LostItemRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM lost_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
