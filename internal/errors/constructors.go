package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *GateError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *GateError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// ConfigFault marks an internal configuration inconsistency, such as a host
// proxy that should exist but does not. Fatal and never handled by the gate.
func ConfigFault(message string) *GateError {
	return New(CategoryConfig, SeverityFatal, message)
}

func ValidationFailed(field, reason string) *GateError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Collaborator errors

// ExtractionFailed wraps a failure from a dependency extraction collaborator.
func ExtractionFailed(kind string, cause error) *GateError {
	return Wrap(cause, CategoryExtraction, SeverityError, "dependency extraction failed").
		WithContext("build_kind", kind)
}

// ServiceFailed wraps a failure from the compliance/update client.
func ServiceFailed(operation string, cause error) *GateError {
	return Wrap(cause, CategoryService, SeverityError, "service call failed").
		WithContext("operation", operation)
}

// ReportFailed wraps a failure from the report renderer.
func ReportFailed(cause error) *GateError {
	return Wrap(cause, CategoryReport, SeverityError, "compliance report generation failed")
}

// Storage errors

func StorageError(operation string, cause error) *GateError {
	return Wrap(cause, CategoryStorage, SeverityWarning, "run history operation failed").
		WithContext("operation", operation)
}
