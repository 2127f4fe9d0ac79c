package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	ErrorCodeBadRequest      = 1
	ErrorCodeNotFound        = 404
	ErrorCodeTooManyRequests = 429
	InternalServerErrorCode  = 500

	// DateTimeFormat is RFC 3339 with millisecond precision, always UTC.
	DateTimeFormat = "2006-01-02T15:04:05.000Z07:00"
)
