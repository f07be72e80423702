package store

import (
	"context"

	"booking-calendar-api/internal/model"
)

// Stats is the summary the seeding CLI prints after a run.
type Stats struct {
	Clients      int64
	Types        int64
	Appointments int64
	Urgent       int64
	ByStatus     map[model.Status]int64
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{ByStatus: map[model.Status]int64{}}

	err := s.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM clienti),
		       (SELECT count(*) FROM tipi_appuntamento),
		       (SELECT count(*) FROM appuntamenti),
		       (SELECT count(*) FROM appuntamenti WHERE urgente)`,
	).Scan(&st.Clients, &st.Types, &st.Appointments, &st.Urgent)
	if err != nil {
		return nil, wrap(err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT stato, count(*) FROM appuntamenti GROUP BY stato ORDER BY count(*) DESC`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var status model.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, wrap(err)
		}
		st.ByStatus[status] = n
	}
	return st, wrap(rows.Err())
}

// Upcoming returns the next appointments from the given date onwards,
// urgent ones first, skipping completed and cancelled rows.
func (s *Store) Upcoming(ctx context.Context, from string, limit int) ([]model.AppointmentDetail, error) {
	return s.queryDetails(ctx, detailSelect+`
		WHERE a.data_appuntamento >= $1 AND a.stato NOT IN ($2, $3)
		ORDER BY a.urgente DESC, a.data_appuntamento, a.ora_inizio
		LIMIT $4`, from, model.StatusCompleted, model.StatusCancelled, limit)
}
