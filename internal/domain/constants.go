package domain

// Default configuration values
// Используются, когда для проекта еще не сохранены настройки бронирования
const (
	DefaultSlotDurationMinutes = 30
	DefaultBufferMinutes       = 0
	DefaultMaxAdvanceDays      = 30
	DefaultTimezone            = "UTC"
	DefaultWorkdayStart        = "09:00"
	DefaultWorkdayEnd          = "18:00"
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 240
	MinAdvanceDays         = 1
	MaxAdvanceDays         = 365 // 1 year
	MaxConsentTextLength   = 2000
	MaxNoteLength          = 2000
	MaxFieldLabelLength    = 200
	MaxFieldValueLength    = 2000
	MaxClientNameLength    = 200
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие слот в расписании
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не занимающие слот (хранятся для истории)
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
