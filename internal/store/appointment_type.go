package store

import (
	"context"

	"booking-calendar-api/internal/model"
)

func (s *Store) CreateType(ctx context.Context, t *model.AppointmentType) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tipi_appuntamento (nome_tipo, descrizione, durata_minuti, colore)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id_tipo, durata_minuti`,
		t.Name, t.Description, t.DurationMinutes, t.Color,
	).Scan(&t.ID, &t.DurationMinutes)
	return wrap(err)
}

func (s *Store) GetType(ctx context.Context, id int64) (*model.AppointmentType, error) {
	t := &model.AppointmentType{}
	err := s.pool.QueryRow(ctx,
		`SELECT id_tipo, nome_tipo, descrizione, durata_minuti, colore
		 FROM tipi_appuntamento WHERE id_tipo = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.DurationMinutes, &t.Color)
	if err != nil {
		return nil, wrap(err)
	}
	return t, nil
}

func (s *Store) ListTypes(ctx context.Context) ([]model.AppointmentType, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_tipo, nome_tipo, descrizione, durata_minuti, colore
		 FROM tipi_appuntamento ORDER BY nome_tipo`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := []model.AppointmentType{}
	for rows.Next() {
		var t model.AppointmentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.DurationMinutes, &t.Color); err != nil {
			return nil, wrap(err)
		}
		out = append(out, t)
	}
	return out, wrap(rows.Err())
}

func (s *Store) UpdateType(ctx context.Context, t *model.AppointmentType) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tipi_appuntamento
		 SET nome_tipo=$1, descrizione=$2, durata_minuti=$3, colore=$4
		 WHERE id_tipo=$5`,
		t.Name, t.Description, t.DurationMinutes, t.Color, t.ID,
	)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
