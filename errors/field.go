package errors

import "fmt"

// Field tags err with the name of the configuration or genesis field it is
// about. Nested fields use dot notation, for example Tokens.0.Owner. A nil
// err stays nil, so validations can be chained without checks.
func Field(name string, err error, format string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	return &fieldError{name: name, err: err, desc: fmt.Sprintf(format, args...)}
}

// AppendField adds the error reported for a field to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

// FieldErrors returns every error reported for the named field, looking
// through wrapped and combined errors.
func FieldErrors(err error, name string) []error {
	if isNilErr(err) {
		return nil
	}
	switch e := err.(type) {
	case *fieldError:
		if e.name == name {
			return []error{e}
		}
		return FieldErrors(e.err, name)
	case unpacker:
		var res []error
		for _, child := range e.Unpack() {
			res = append(res, FieldErrors(child, name)...)
		}
		return res
	case causer:
		return FieldErrors(e.Cause(), name)
	}
	return nil
}

type fieldError struct {
	name string
	err  error
	desc string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.name, e.err)
	}
	return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.err)
}

// Cause returns the error reported for the field.
func (e *fieldError) Cause() error { return e.err }
