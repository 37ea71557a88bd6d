// Package tracking provides the append-only position trail of a delivery.
// Each accept and advance operation records a TrackingPoint; queries read
// the trail back ordered by time for the live-map view.
package tracking
