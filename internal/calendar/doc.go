// Package calendar provides a client for the Google Calendar API scoped
// to what the booking engine needs: fetching busy intervals for a day
// and inserting appointments.
//
// Busy intervals are fetched fresh for every availability query and
// never cached; the external calendar is the sole source of truth for
// what is booked.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	busy, err := client.ListBusy(ctx, "primary", dayStart, dayEnd)
package calendar
