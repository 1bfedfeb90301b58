package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic-api/internal/domain/vaccines"
)

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccines (
			id, name, manufacturer, price, interval_days, description,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		v.ID,
		v.Name,
		v.Manufacturer,
		v.Price,
		v.IntervalDays,
		v.Description,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinesRepo) Update(ctx context.Context, v vaccines.Vaccine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccines
		SET
			name = $2,
			manufacturer = $3,
			price = $4,
			interval_days = $5,
			description = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.Name,
		v.Manufacturer,
		v.Price,
		v.IntervalDays,
		v.Description,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id string) (vaccines.Vaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccines.Vaccine{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, manufacturer, price, interval_days, description,
			created_at, updated_at
		FROM vaccines
		WHERE id = $1
	`, id)

	var v vaccines.Vaccine
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Manufacturer,
		&v.Price,
		&v.IntervalDays,
		&v.Description,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vaccines.Vaccine{}, ErrNotFound
		}
		return vaccines.Vaccine{}, err
	}

	return v, nil
}

func (r *VaccinesRepo) ListAll(ctx context.Context) ([]vaccines.Vaccine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, manufacturer, price, interval_days, description,
			created_at, updated_at
		FROM vaccines
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		var v vaccines.Vaccine
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Manufacturer,
			&v.Price,
			&v.IntervalDays,
			&v.Description,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}
