package store

import (
	"context"

	"booking-calendar-api/internal/model"
)

const clientColumns = `id_cliente, nome, cognome, email, telefono, telefono_secondario,
	via, numero_civico, citta, cap, provincia, note, data_registrazione, attivo`

func scanClient(row interface{ Scan(...any) error }, c *model.Client) error {
	return row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.SecondaryPhone,
		&c.Street, &c.StreetNumber, &c.City, &c.PostalCode, &c.Province, &c.Notes,
		&c.RegisteredAt, &c.Active,
	)
}

// CreateClient inserts c and fills in the generated id, registration
// timestamp and active flag.
func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO clienti (nome, cognome, email, telefono, telefono_secondario,
		                      via, numero_civico, citta, cap, provincia, note)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id_cliente, data_registrazione, attivo`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.SecondaryPhone,
		c.Street, c.StreetNumber, c.City, c.PostalCode, c.Province, c.Notes,
	).Scan(&c.ID, &c.RegisteredAt, &c.Active)
	return wrap(err)
}

func (s *Store) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	c := &model.Client{}
	row := s.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clienti WHERE id_cliente = $1`, id)
	if err := scanClient(row, c); err != nil {
		return nil, wrap(err)
	}
	return c, nil
}

// ClientFilter narrows SearchClients. Zero values mean "no filter"; Active
// defaults to unset so callers can see deactivated clients when they ask.
type ClientFilter struct {
	Query  string // matches nome, cognome or email, case-insensitive
	City   string
	Active *bool
}

func (s *Store) SearchClients(ctx context.Context, f ClientFilter) ([]model.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clienti WHERE 1=1`
	args := []any{}

	if f.Active != nil {
		args = append(args, *f.Active)
		q += ` AND attivo = $` + itoa(len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := itoa(len(args))
		q += ` AND (nome ILIKE $` + n + ` OR cognome ILIKE $` + n + ` OR email ILIKE $` + n + `)`
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		q += ` AND citta ILIKE $` + itoa(len(args))
	}
	q += ` ORDER BY cognome, nome`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, wrap(err)
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err())
}

// UpdateClient rewrites every mutable column of the client row.
func (s *Store) UpdateClient(ctx context.Context, c *model.Client) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE clienti
		 SET nome=$1, cognome=$2, email=$3, telefono=$4, telefono_secondario=$5,
		     via=$6, numero_civico=$7, citta=$8, cap=$9, provincia=$10, note=$11, attivo=$12
		 WHERE id_cliente=$13`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.SecondaryPhone,
		c.Street, c.StreetNumber, c.City, c.PostalCode, c.Province, c.Notes, c.Active,
		c.ID,
	)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateClient is the only delete the registry offers: rows stay, the
// attivo flag goes false.
func (s *Store) DeactivateClient(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE clienti SET attivo = false WHERE id_cliente = $1`, id)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
