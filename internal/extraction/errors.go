package extraction

import (
	"errors"
	"fmt"
)

// Row validation results. Neither is surfaced by ExtractPage; rejected rows
// are only counted.
var (
	ErrInsufficientColumns = errors.New("row has fewer than 8 columns")
	ErrNotDataRow          = errors.New("row is not a data row")
)

// Steps reported by NavigationError.
const (
	StepNavigate  = "navigate"
	StepConfigure = "configure filters"
	StepSort      = "sort by rate"
	StepDetect    = "detect total pages"
	StepRows      = "read rows"
	StepAdvance   = "advance page"
)

// NavigationError reports a required element that could not be reached or
// interacted with. It is fatal to the run.
type NavigationError struct {
	Step     string
	Selector string
	Err      error
}

func (e *NavigationError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("navigation failed at %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("navigation failed at %s (%s): %v", e.Step, e.Selector, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

func navErr(step, selector string, err error) error {
	return &NavigationError{Step: step, Selector: selector, Err: err}
}
