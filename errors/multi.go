package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error or only nil errors were provided, nil is returned. A single
// non nil error is returned as it is. Otherwise all errors are combined into a
// multi error that is of every kind its members are (see Error.Is).
func Append(errs ...error) error {
	var flat []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			flat = append(flat, m.errs...)
		} else {
			flat = append(flat, e)
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiErr{errs: flat}
	}
}

type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	msgs := make([]string, len(m.errs))
	for i, e := range m.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack returns all clubbed errors in the order they were added.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// Cause returns the first error, consistent with a fail-fast approach.
func (m *multiErr) Cause() error {
	return m.errs[0]
}

// unpacker is implemented by errors that club together many errors.
type unpacker interface {
	Unpack() []error
}
