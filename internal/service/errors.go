package service

// Error is the failure taxonomy every handler maps at the HTTP
// boundary: Code is the status to answer with, Msg the user-visible
// message, Extra optional fields merged into the error body.
type Error struct {
	Code  int
	Msg   string
	Err   error
	Extra map[string]any
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) *Error   { return &Error{Code: 400, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Code: 401, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Code: 404, Msg: msg} }

func Internal(msg string, err error) *Error {
	return &Error{Code: 500, Msg: msg, Err: err}
}
