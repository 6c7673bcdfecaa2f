package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-health-tracker/internal/domain/care"
	"pet-health-tracker/internal/domain/care/details"
)

type CareRepo struct {
	db *sql.DB
}

func NewCareRepo(db *sql.DB) *CareRepo {
	return &CareRepo{db: db}
}

func (r *CareRepo) Create(ctx context.Context, e care.Event) error {
	treatment, err := toNullJSON(e.Treatment)
	if err != nil {
		return fmt.Errorf("encoding treatment: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO care_events (
			id, animal_id,
			kind, name, date,
			recurrence_months, mandatory, custom, product,
			recorded_at,
			treatment, weight_value, weight_unit
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		e.ID,
		e.AnimalID,
		string(e.Kind),
		e.Name,
		e.Date,
		toNullInt(e.RecurrenceMonths),
		e.Mandatory,
		e.Custom,
		e.Product,
		e.RecordedAt,
		treatment,
		weightValue(e.Weight),
		weightUnit(e.Weight),
	)
	return err
}

func (r *CareRepo) GetByID(ctx context.Context, id string) (care.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return care.Event{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, animal_id,
			kind, name, date,
			recurrence_months, mandatory, custom, product,
			recorded_at,
			treatment, weight_value, weight_unit
		FROM care_events
		WHERE id = $1
	`, id)

	e, err := scanCareEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return care.Event{}, ErrNotFound
		}
		return care.Event{}, err
	}
	return e, nil
}

func (r *CareRepo) ListByAnimal(ctx context.Context, animalID string, filter care.ListFilter) ([]care.Event, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, animal_id,
			kind, name, date,
			recurrence_months, mandatory, custom, product,
			recorded_at,
			treatment, weight_value, weight_unit
		FROM care_events
		WHERE animal_id = $1
	`)

	args := []any{animalID}
	argN := 2

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(k))
			argN++
		}
		sb.WriteString(" AND kind IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// Empates de date se resuelven por recorded_at para que el orden sea
	// determinista.
	sb.WriteString(" ORDER BY date DESC, recorded_at DESC")

	// Limit <= 0 significa sin límite: el informe de salud necesita el
	// historial completo del animal.
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]care.Event, 0)
	for rows.Next() {
		e, err := scanCareEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func scanCareEvent(scan func(...any) error) (care.Event, error) {
	var e care.Event
	var kind string
	var recMonths sql.NullInt64
	var treatment []byte
	var wValue sql.NullFloat64
	var wUnit sql.NullString

	if err := scan(
		&e.ID,
		&e.AnimalID,
		&kind,
		&e.Name,
		&e.Date,
		&recMonths,
		&e.Mandatory,
		&e.Custom,
		&e.Product,
		&e.RecordedAt,
		&treatment,
		&wValue,
		&wUnit,
	); err != nil {
		return care.Event{}, err
	}

	e.Kind = care.Kind(kind)
	if recMonths.Valid {
		n := int(recMonths.Int64)
		e.RecurrenceMonths = &n
	}
	if len(treatment) > 0 {
		var reg details.Regimen
		if err := json.Unmarshal(treatment, &reg); err != nil {
			return care.Event{}, fmt.Errorf("decoding treatment: %w", err)
		}
		e.Treatment = &reg
	}
	if wValue.Valid {
		e.Weight = &details.Measurement{Value: wValue.Float64, Unit: wUnit.String}
	}

	return e, nil
}

// helpers

// treatment es jsonb; nil => NULL
func toNullJSON(reg *details.Regimen) (any, error) {
	if reg == nil {
		return nil, nil
	}
	b, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func toNullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func weightValue(m *details.Measurement) sql.NullFloat64 {
	if m == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: m.Value, Valid: true}
}

func weightUnit(m *details.Measurement) sql.NullString {
	if m == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: m.Unit, Valid: true}
}
