package domain

// Default booking policy values, used when the settings store omits a field
const (
	DefaultSlotGranularityMinutes      = 15
	DefaultMaxDurationMinutes          = 120
	DefaultMinAdvanceMinutes           = 60
	DefaultMaxAdvanceDays              = 30
	DefaultBufferMinutes               = 15
	DefaultMaxPartySizeOnline          = 8
	DefaultMaxCapacityThresholdPercent = 100
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 120
	MinDurationMinutes        = 15
	MaxDurationMinutesLimit   = 480 // 8 hours
	MaxAdvanceDaysLimit       = 365
	MaxBufferMinutes          = 120
	MaxSpecialRequestsLength  = 500
	MaxCancellationReasonLen  = 500
)

// NeedsAttentionGraceMinutes grace period after the reservation start before
// an unseated reservation is flagged for the floor staff
const NeedsAttentionGraceMinutes = 15

// MaxTablesPerReservation upper bound for the automatic combination search.
// Parties that cannot be seated on four tables are handled manually.
const MaxTablesPerReservation = 4

// Time format constants
const (
	TimeFormat    = "15:04"      // HH:MM
	DateFormat    = "2006-01-02" // YYYY-MM-DD
	MinutesPerDay = 24 * 60
)

// InactiveStatuses список статусов, не занимающих столы
// Используется при проверке пересечений и расчёте занятости
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, учитываемых при проверке доступности
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusSeated,
	StatusCompleted,
}
