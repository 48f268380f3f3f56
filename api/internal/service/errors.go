package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports a missing crop, alert, or harvest.
var ErrNotFound = errors.New("not found")

// ValidationError lists every missing or malformed field. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required fields: %s", strings.Join(e.Fields, ", "))
}

// AsValidation unwraps err into a *ValidationError when applicable.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
