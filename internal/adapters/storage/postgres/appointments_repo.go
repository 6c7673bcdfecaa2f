package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-health-tracker/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	// animal_ids y reminder_ids van como jsonb: listas pequeñas, sin
	// necesidad de consultarlas por separado.
	animalIDs, err := json.Marshal(a.AnimalIDs)
	if err != nil {
		return fmt.Errorf("encoding animal ids: %w", err)
	}
	reminderIDs, err := json.Marshal(a.ReminderIDs)
	if err != nil {
		return fmt.Errorf("encoding reminder ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, owner_user_id,
			date, time_hhmm, place,
			animal_ids, reminder_ids,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.OwnerUserID,
		a.Date,
		a.TimeHHMM,
		a.Place,
		animalIDs,
		reminderIDs,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			date, time_hhmm, place,
			animal_ids, reminder_ids,
			created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]appointments.Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			date, time_hhmm, place,
			animal_ids, reminder_ids,
			created_at, updated_at
		FROM appointments
		WHERE owner_user_id = $1
		ORDER BY date ASC, time_hhmm ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentsRepo) ListByAnimal(ctx context.Context, animalID string) ([]appointments.Appointment, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			date, time_hhmm, place,
			animal_ids, reminder_ids,
			created_at, updated_at
		FROM appointments
		WHERE animal_ids @> to_jsonb($1::text)
		ORDER BY date ASC, time_hhmm ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectAppointments(rows *sql.Rows) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(scan func(...any) error) (appointments.Appointment, error) {
	var a appointments.Appointment
	var animalIDs, reminderIDs []byte

	if err := scan(
		&a.ID,
		&a.OwnerUserID,
		&a.Date,
		&a.TimeHHMM,
		&a.Place,
		&animalIDs,
		&reminderIDs,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	if len(animalIDs) > 0 {
		if err := json.Unmarshal(animalIDs, &a.AnimalIDs); err != nil {
			return appointments.Appointment{}, fmt.Errorf("decoding animal ids: %w", err)
		}
	}
	if len(reminderIDs) > 0 {
		if err := json.Unmarshal(reminderIDs, &a.ReminderIDs); err != nil {
			return appointments.Appointment{}, fmt.Errorf("decoding reminder ids: %w", err)
		}
	}
	return a, nil
}
