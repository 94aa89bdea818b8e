package locpick

import "context"

// InferredLocator is one locator proposed by the reasoning service.
type InferredLocator struct {
	// Expr is the proposed XPath expression. Empty when Conflict is set.
	Expr string

	// Conflict marks a field for which the response carried more than one
	// distinct expression. The colliding expressions are not guessed
	// between; the field is reported as failed with a detail message.
	Conflict bool
}

// Inference maps requested field names to inferred locators. Fields the
// model omitted, or explicitly marked as having no locator, are absent
// from the map. Partial inferences are valid: absent fields are reported
// as failed for that field, not as a whole-task error.
type Inference map[string]InferredLocator

// Inferrer sends a structural digest to an external reasoning service and
// parses a field-to-expression mapping from its response.
type Inferrer interface {
	// Infer requests locators for the named fields. Returns EINFERENCE on
	// a failed call, a timeout, or a response whose shape does not match
	// the expected structure.
	Infer(ctx context.Context, digest string, fields []string) (Inference, error)
}
