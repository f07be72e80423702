package store

import (
	"context"

	"booking-calendar-api/internal/model"
)

// detailColumns joins appuntamenti with the owning client and the optional
// type, matching AppointmentDetail field order.
const detailSelect = `
	SELECT a.id_appuntamento, a.id_cliente, a.id_tipo, a.data_appuntamento,
	       a.ora_inizio, a.ora_fine, a.titolo, a.descrizione, a.luogo, a.note,
	       a.urgente, a.stato, a.promemoria_inviato, a.data_creazione, a.data_modifica,
	       c.nome, c.cognome, c.telefono, t.nome_tipo, t.colore
	FROM appuntamenti a
	JOIN clienti c ON a.id_cliente = c.id_cliente
	LEFT JOIN tipi_appuntamento t ON a.id_tipo = t.id_tipo`

func scanDetail(row interface{ Scan(...any) error }, d *model.AppointmentDetail) error {
	return row.Scan(
		&d.ID, &d.ClientID, &d.TypeID, &d.Date,
		&d.StartTime, &d.EndTime, &d.Title, &d.Description, &d.Location, &d.Notes,
		&d.Urgent, &d.Status, &d.ReminderSent, &d.CreatedAt, &d.UpdatedAt,
		&d.ClientFirstName, &d.ClientLastName, &d.ClientPhone, &d.TypeName, &d.TypeColor,
	)
}

// CreateAppointment inserts a and fills in the generated id, default status
// and timestamps. A dangling client or type reference surfaces as
// ErrReference from the foreign keys.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appuntamenti
		   (id_cliente, id_tipo, data_appuntamento, ora_inizio, ora_fine,
		    titolo, descrizione, luogo, note, urgente)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING id_appuntamento, stato, promemoria_inviato, data_creazione, data_modifica`,
		a.ClientID, a.TypeID, a.Date, a.StartTime, a.EndTime,
		a.Title, a.Description, a.Location, a.Notes, a.Urgent,
	).Scan(&a.ID, &a.Status, &a.ReminderSent, &a.CreatedAt, &a.UpdatedAt)
	return wrap(err)
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	d := &model.AppointmentDetail{}
	row := s.pool.QueryRow(ctx, detailSelect+` WHERE a.id_appuntamento = $1`, id)
	if err := scanDetail(row, d); err != nil {
		return nil, wrap(err)
	}
	return d, nil
}

// AppointmentFilter narrows ListAppointments. DateFrom is required so the
// default window ("from today") is decided by the caller, not here.
type AppointmentFilter struct {
	DateFrom string
	DateTo   string
	Status   model.Status
	Urgent   *bool
	ClientID int64
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.AppointmentDetail, error) {
	q := detailSelect + ` WHERE a.data_appuntamento >= $1`
	args := []any{f.DateFrom}

	if f.DateTo != "" {
		args = append(args, f.DateTo)
		q += ` AND a.data_appuntamento <= $` + itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND a.stato = $` + itoa(len(args))
	}
	if f.Urgent != nil {
		args = append(args, *f.Urgent)
		q += ` AND a.urgente = $` + itoa(len(args))
	}
	if f.ClientID != 0 {
		args = append(args, f.ClientID)
		q += ` AND a.id_cliente = $` + itoa(len(args))
	}
	q += ` ORDER BY a.data_appuntamento, a.ora_inizio`

	return s.queryDetails(ctx, q, args...)
}

// SearchAppointments matches the query against title, description, notes and
// the client's name, newest first.
func (s *Store) SearchAppointments(ctx context.Context, query string) ([]model.AppointmentDetail, error) {
	pattern := "%" + query + "%"
	return s.queryDetails(ctx, detailSelect+`
		WHERE a.titolo ILIKE $1
		   OR a.descrizione ILIKE $1
		   OR a.note ILIKE $1
		   OR c.nome ILIKE $1
		   OR c.cognome ILIKE $1
		ORDER BY a.data_appuntamento DESC, a.ora_inizio DESC`, pattern)
}

// DailySchedule returns the day's appointments with cancelled ones excluded,
// in start-time order.
func (s *Store) DailySchedule(ctx context.Context, date string) ([]model.AppointmentDetail, error) {
	return s.queryDetails(ctx, detailSelect+`
		WHERE a.data_appuntamento = $1 AND a.stato <> $2
		ORDER BY a.ora_inizio`, date, model.StatusCancelled)
}

// HasOverlap reports whether any live appointment on date intersects
// [start,end). Cancelled and no-show rows do not block a slot. The title of
// the first conflicting appointment is returned for the error message.
func (s *Store) HasOverlap(ctx context.Context, date, start, end string, excludeID int64) (bool, string, error) {
	q := `SELECT titolo FROM appuntamenti
	      WHERE data_appuntamento = $1
	        AND stato NOT IN ($2, $3)
	        AND ora_inizio < $4
	        AND ora_fine > $5`
	args := []any{date, model.StatusCancelled, model.StatusNoShow, end, start}

	if excludeID != 0 {
		args = append(args, excludeID)
		q += ` AND id_appuntamento <> $` + itoa(len(args))
	}
	q += ` LIMIT 1`

	var title string
	err := s.pool.QueryRow(ctx, q, args...).Scan(&title)
	if err != nil {
		if wrap(err) == ErrNotFound {
			return false, "", nil
		}
		return false, "", wrap(err)
	}
	return true, title, nil
}

// UpdateAppointment rewrites the mutable columns and refreshes
// data_modifica. The schema does not do that on its own, so it happens here.
func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appuntamenti
		 SET id_tipo=$1, data_appuntamento=$2, ora_inizio=$3, ora_fine=$4,
		     titolo=$5, descrizione=$6, luogo=$7, note=$8, urgente=$9, stato=$10,
		     data_modifica=now()
		 WHERE id_appuntamento=$11`,
		a.TypeID, a.Date, a.StartTime, a.EndTime,
		a.Title, a.Description, a.Location, a.Notes, a.Urgent, a.Status,
		a.ID,
	)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus is the caller-driven state change: any status to any other.
func (s *Store) SetStatus(ctx context.Context, id int64, st model.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appuntamenti SET stato=$1, data_modifica=now() WHERE id_appuntamento=$2`,
		st, id,
	)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkReminderSent(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appuntamenti SET promemoria_inviato=true, data_modifica=now()
		 WHERE id_appuntamento=$1`, id,
	)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAppointment hard-deletes the row. Cascading over the change history
// is a configuration choice: with cascadeHistory false a row with history
// fails with ErrReference and the caller decides what to do.
func (s *Store) DeleteAppointment(ctx context.Context, id int64, cascadeHistory bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrap(err)
	}
	defer tx.Rollback(ctx)

	if cascadeHistory {
		if _, err := tx.Exec(ctx,
			`DELETE FROM storico_modifiche WHERE id_appuntamento = $1`, id); err != nil {
			return wrap(err)
		}
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM appuntamenti WHERE id_appuntamento = $1`, id)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return wrap(tx.Commit(ctx))
}

func (s *Store) queryDetails(ctx context.Context, q string, args ...any) ([]model.AppointmentDetail, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := []model.AppointmentDetail{}
	for rows.Next() {
		var d model.AppointmentDetail
		if err := scanDetail(rows, &d); err != nil {
			return nil, wrap(err)
		}
		out = append(out, d)
	}
	return out, wrap(rows.Err())
}
