package models

// Person represents a participant of a calculation.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// CalculationID is the calculation this person belongs to.
	CalculationID string

	// Name is the display name, non-empty and unique within the calculation.
	Name string
}
