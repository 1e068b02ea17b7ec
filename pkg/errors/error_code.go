package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidInterval      ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104

	// Data/Resource errors (200-299)
	ErrCodeNoData        ErrorCode = 200
	ErrCodeFileNotFound  ErrorCode = 201
	ErrCodeDataMalformed ErrorCode = 202

	// Market data errors (300-399)
	ErrCodeFetchFailed     ErrorCode = 300
	ErrCodeWriteFailed     ErrorCode = 301
	ErrCodeParseFailed     ErrorCode = 302
	ErrCodeInvalidProvider ErrorCode = 303
	ErrCodeInvalidFormat   ErrorCode = 304
)
