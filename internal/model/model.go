package model

import "time"

// Client is a person who books appointments. Clients are never hard-deleted;
// Active is flipped to false instead.
type Client struct {
	ID             int64     `json:"id_cliente"`
	FirstName      string    `json:"nome"`
	LastName       string    `json:"cognome"`
	Email          *string   `json:"email,omitempty"`
	Phone          string    `json:"telefono"`
	SecondaryPhone *string   `json:"telefono_secondario,omitempty"`
	Street         *string   `json:"via,omitempty"`
	StreetNumber   *string   `json:"numero_civico,omitempty"`
	City           *string   `json:"citta,omitempty"`
	PostalCode     *string   `json:"cap,omitempty"`
	Province       *string   `json:"provincia,omitempty"`
	Notes          *string   `json:"note,omitempty"`
	RegisteredAt   time.Time `json:"data_registrazione"`
	Active         bool      `json:"attivo"`
}

// AppointmentType is reusable reference data applied to appointments.
type AppointmentType struct {
	ID              int64   `json:"id_tipo"`
	Name            string  `json:"nome_tipo"`
	Description     *string `json:"descrizione,omitempty"`
	DurationMinutes int     `json:"durata_minuti"`
	Color           *string `json:"colore,omitempty"`
}

// Appointment is a scheduled event tied to exactly one client and at most
// one type. Date is YYYY-MM-DD, StartTime/EndTime are 24h HH:MM.
type Appointment struct {
	ID           int64     `json:"id_appuntamento"`
	ClientID     int64     `json:"id_cliente"`
	TypeID       *int64    `json:"id_tipo,omitempty"`
	Date         string    `json:"data_appuntamento"`
	StartTime    string    `json:"ora_inizio"`
	EndTime      string    `json:"ora_fine"`
	Title        string    `json:"titolo"`
	Description  *string   `json:"descrizione,omitempty"`
	Location     *string   `json:"luogo,omitempty"`
	Notes        *string   `json:"note,omitempty"`
	Urgent       bool      `json:"urgente"`
	Status       Status    `json:"stato"`
	ReminderSent bool      `json:"promemoria_inviato"`
	CreatedAt    time.Time `json:"data_creazione"`
	UpdatedAt    time.Time `json:"data_modifica"`
}

// AppointmentDetail is an appointment joined with the client it belongs to
// and, when set, its type.
type AppointmentDetail struct {
	Appointment
	ClientFirstName string  `json:"nome"`
	ClientLastName  string  `json:"cognome"`
	ClientPhone     string  `json:"telefono"`
	TypeName        *string `json:"nome_tipo,omitempty"`
	TypeColor       *string `json:"colore,omitempty"`
}

// ChangeEntry is an immutable audit record of a change to an appointment.
type ChangeEntry struct {
	ID            int64     `json:"id_modifica"`
	AppointmentID int64     `json:"id_appuntamento"`
	Kind          string    `json:"tipo_modifica"`
	Description   *string   `json:"descrizione_modifica,omitempty"`
	RecordedAt    time.Time `json:"data_modifica"`
}

// Conventional tipo_modifica labels. The column itself is free text.
const (
	ChangeCreated   = "creazione"
	ChangeUpdated   = "modifica"
	ChangeCancelled = "cancellazione"
	ChangeCompleted = "completamento"
	ChangeReminder  = "promemoria"
)
