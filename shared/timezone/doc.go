// Package timezone centralizes time handling so every timestamp the service
// produces is expressed in the configured application timezone. Booking date
// arithmetic (check-in not in the past) depends on Today, which anchors the
// comparison to the application's local midnight rather than the server's.
package timezone
