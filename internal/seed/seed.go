package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"booking-calendar-api/internal/model"
	"booking-calendar-api/internal/store"
)

// Summary reports what a seeding run created.
type Summary struct {
	Clients      int
	Types        int
	Appointments int
	Skipped      bool
}

func ptr(s string) *string { return &s }

var sampleClients = []model.Client{
	{FirstName: "Mario", LastName: "Rossi", Phone: "333-1111", Email: ptr("mario.rossi@example.com"), City: ptr("Milano")},
	{FirstName: "Giulia", LastName: "Bianchi", Phone: "333-2222", Email: ptr("giulia.bianchi@example.com"), City: ptr("Roma")},
	{FirstName: "Luca", LastName: "Verdi", Phone: "333-3333", Email: ptr("luca.verdi@example.com"), City: ptr("Torino")},
	{FirstName: "Anna", LastName: "Ferrari", Phone: "333-4444", City: ptr("Milano"), Notes: ptr("Preferisce il mattino")},
	{FirstName: "Paolo", LastName: "Esposito", Phone: "333-5555", Email: ptr("paolo.esposito@example.com"), City: ptr("Napoli")},
	{FirstName: "Sara", LastName: "Romano", Phone: "333-6666", City: ptr("Bologna")},
}

var sampleTypes = []model.AppointmentType{
	{Name: "Consulenza", Description: ptr("Consulenza generale"), DurationMinutes: 60, Color: ptr("#3498db")},
	{Name: "Prima visita", Description: ptr("Primo incontro con il cliente"), DurationMinutes: 45, Color: ptr("#9b59b6")},
	{Name: "Controllo", Description: ptr("Visita di controllo"), DurationMinutes: 30, Color: ptr("#2ecc71")},
	{Name: "Trattamento", Description: ptr("Trattamento completo"), DurationMinutes: 90, Color: ptr("#e74c3c")},
}

var sampleTitles = []string{
	"Prima visita", "Controllo periodico", "Consulenza iniziale",
	"Follow-up", "Revisione pratica", "Trattamento programmato",
}

// Run populates an empty database with example clients, types and a month of
// appointments. A database that already has clients is left untouched, so
// rerunning the CLI stays safe.
func Run(ctx context.Context, st *store.Store) (*Summary, error) {
	stats, err := st.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	if stats.Clients > 0 {
		return &Summary{Skipped: true}, nil
	}

	sum := &Summary{}

	clientIDs := make([]int64, 0, len(sampleClients))
	for i := range sampleClients {
		c := sampleClients[i]
		if err := st.CreateClient(ctx, &c); err != nil {
			return nil, fmt.Errorf("seed client %s %s: %w", c.FirstName, c.LastName, err)
		}
		clientIDs = append(clientIDs, c.ID)
		sum.Clients++
	}

	types := make([]model.AppointmentType, 0, len(sampleTypes))
	for i := range sampleTypes {
		t := sampleTypes[i]
		if err := st.CreateType(ctx, &t); err != nil {
			return nil, fmt.Errorf("seed type %s: %w", t.Name, err)
		}
		types = append(types, t)
		sum.Types++
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	day := time.Now().UTC()

	for d := 0; d < 30; d++ {
		date := day.AddDate(0, 0, d).Format(model.DateLayout)
		// staggered slots so seeded days never overlap
		hour := 9
		for n := rng.Intn(3); n > 0; n-- {
			t := types[rng.Intn(len(types))]
			start := fmt.Sprintf("%02d:00", hour)
			end, err := model.AddMinutes(start, t.DurationMinutes)
			if err != nil {
				return nil, fmt.Errorf("seed: %w", err)
			}
			hour += 2

			a := &model.Appointment{
				ClientID:  clientIDs[rng.Intn(len(clientIDs))],
				TypeID:    &t.ID,
				Date:      date,
				StartTime: start,
				EndTime:   end,
				Title:     sampleTitles[rng.Intn(len(sampleTitles))],
				Location:  ptr("Studio Principale"),
				Urgent:    rng.Intn(10) == 0,
			}
			if err := st.CreateAppointment(ctx, a); err != nil {
				return nil, fmt.Errorf("seed appointment on %s: %w", date, err)
			}
			desc := "Appuntamento creato"
			if err := st.AppendHistory(ctx, &model.ChangeEntry{
				AppointmentID: a.ID,
				Kind:          model.ChangeCreated,
				Description:   &desc,
			}); err != nil {
				return nil, fmt.Errorf("seed history on %s: %w", date, err)
			}
			sum.Appointments++
		}
	}

	return sum, nil
}
