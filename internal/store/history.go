package store

import (
	"context"

	"booking-calendar-api/internal/model"
)

// AppendHistory writes an audit entry for an appointment. Entries are never
// updated or deleted afterwards; there is no API for it. A dangling
// appointment id surfaces as ErrReference.
func (s *Store) AppendHistory(ctx context.Context, e *model.ChangeEntry) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO storico_modifiche (id_appuntamento, tipo_modifica, descrizione_modifica)
		 VALUES ($1,$2,$3)
		 RETURNING id_modifica, data_modifica`,
		e.AppointmentID, e.Kind, e.Description,
	).Scan(&e.ID, &e.RecordedAt)
	return wrap(err)
}

// ListHistory returns the audit trail newest first, for display.
func (s *Store) ListHistory(ctx context.Context, appointmentID int64) ([]model.ChangeEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_modifica, id_appuntamento, tipo_modifica, descrizione_modifica, data_modifica
		 FROM storico_modifiche
		 WHERE id_appuntamento = $1
		 ORDER BY data_modifica DESC, id_modifica DESC`, appointmentID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := []model.ChangeEntry{}
	for rows.Next() {
		var e model.ChangeEntry
		if err := rows.Scan(&e.ID, &e.AppointmentID, &e.Kind, &e.Description, &e.RecordedAt); err != nil {
			return nil, wrap(err)
		}
		out = append(out, e)
	}
	return out, wrap(rows.Err())
}
