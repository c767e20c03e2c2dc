// Package timezone pins every wall-clock computation to the zone configured by
// APP_TIMEZONE (an IANA name such as "America/Mexico_City"). Reservation dates
// and hours are local to the band, so "today", "past" and "after the event"
// are all answered here:
//
//	today := timezone.Today()               // "2024-09-15"
//	day, err := timezone.ParseDate(today)   // midnight, local
//	stamp := timezone.Format(t, time.RFC3339)
//
// The location is loaded once when the package is imported and falls back to
// UTC when the name cannot be resolved.
package timezone
