package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic-api/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, pet_id, vaccine_id, applied_by_user_id,
			applied_at, next_due_at, batch, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		v.ID,
		v.PetID,
		v.VaccineID,
		v.AppliedByUserID,
		v.AppliedAt,
		toNullDate(v.NextDueAt),
		v.Batch,
		v.Notes,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			vaccine_id = $2,
			applied_at = $3,
			next_due_at = $4,
			batch = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.VaccineID,
		v.AppliedAt,
		toNullDate(v.NextDueAt),
		v.Batch,
		v.Notes,
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

func (r *VaccinationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccinations.Vaccination{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, vaccine_id, applied_by_user_id,
			applied_at, next_due_at, batch, notes,
			created_at, updated_at
		FROM vaccinations
		WHERE id = $1
	`, id)

	return scanVaccination(row.Scan)
}

func (r *VaccinationsRepo) ListAll(ctx context.Context) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, vaccine_id, applied_by_user_id,
			applied_at, next_due_at, batch, notes,
			created_at, updated_at
		FROM vaccinations
		ORDER BY applied_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVaccinations(rows)
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, vaccine_id, applied_by_user_id,
			applied_at, next_due_at, batch, notes,
			created_at, updated_at
		FROM vaccinations
		WHERE pet_id = $1
		ORDER BY applied_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVaccinations(rows)
}

func collectVaccinations(rows *sql.Rows) ([]vaccinations.Vaccination, error) {
	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVaccination(scan func(dest ...any) error) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	var due sql.NullTime
	if err := scan(
		&v.ID,
		&v.PetID,
		&v.VaccineID,
		&v.AppliedByUserID,
		&v.AppliedAt,
		&due,
		&v.Batch,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vaccinations.Vaccination{}, ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}

	if due.Valid {
		t := due.Time
		v.NextDueAt = &t
	}

	return v, nil
}
