package types

import "fmt"

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports malformed or out-of-range input. The requested
// mutation is not applied.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an unknown building or use-period identifier.
type NotFoundError struct {
	Resource string
	ID       uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// LastPeriodError refuses deletion of a building's sole remaining use
// period; every building must keep at least one.
type LastPeriodError struct {
	BuildingID uint64
}

func (e *LastPeriodError) Error() string {
	return fmt.Sprintf("building %d has only one use period; it cannot be deleted", e.BuildingID)
}
