package apperrors

// Error is the application error carried across component boundaries. Errors
// form a hierarchy: each package declares sentinel errors with New and derives
// more specific ones from them, so errors.Is keeps matching the base while the
// message narrows. The HTTP status code travels with the error, which keeps
// transport code free of mapping tables.
type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	MsgErr(msg string, err ...error) Error
	Msg(msg string) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}
