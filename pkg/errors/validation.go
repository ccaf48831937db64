package errors

// ValidateLegs validates an external leg count. The generator treats
// legs == 0 as an unchecked precondition violation, so every entry point
// rejects it here first.
func ValidateLegs(legs int) error {
	if legs < 1 {
		return New(ErrCodeInvalidLegs, "number of legs must be >= 1, got %d", legs)
	}
	return nil
}

// ValidateCounts validates a degree / EE-contraction pair after any
// inference has been applied.
func ValidateCounts(degree, ee int) error {
	if degree < 0 {
		return New(ErrCodeInvalidDegree, "degree must be >= 0, got %d", degree)
	}
	if ee < 0 {
		return New(ErrCodeInvalidEE, "EE contractions must be >= 0, got %d", ee)
	}
	if ee > degree {
		return New(ErrCodeInvalidEE, "EE contractions (%d) cannot exceed degree (%d)", ee, degree)
	}
	return nil
}
