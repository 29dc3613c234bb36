package domain

import "fmt"

// InvalidMissionError reports mission parameters that make an assessment
// meaningless: inverted date ranges or unrecognized orbit/shielding values.
// Fatal to the single assessment call; surfaced to the caller as an
// actionable message.
type InvalidMissionError struct {
	Field  string
	Detail string
}

func (e *InvalidMissionError) Error() string {
	return fmt.Sprintf("invalid mission parameters: %s: %s", e.Field, e.Detail)
}

// ContractViolationError reports a programmer error: a percentage outside
// [0,100] reached the categorizer without passing through the facade clamp.
// Never masked or recovered.
type ContractViolationError struct {
	Value float64
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("categorize called with out-of-range percentage %g: caller must clamp to [0,100] first", e.Value)
}
