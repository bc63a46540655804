package domain

import "time"

// Default booking rule values
const (
	DefaultMinLeadTime        = 2 * time.Hour
	DefaultMinDuration        = 30 * time.Minute
	DefaultMaxDuration        = 12 * time.Hour
	DefaultCancellationCutoff = 24 * time.Hour
	DefaultPendingTTL         = 30 * time.Minute
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxPurposeLength            = 500
	MaxNotesLength              = 500
)

// HoldingStatuses статусы, удерживающие интервал
var HoldingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
