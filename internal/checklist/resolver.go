package checklist

import (
	"visapath/internal/condition"
	"visapath/internal/profile"
	"visapath/internal/ruleset"
)

// resolveDocuments applies each document's condition to the applicant in
// declaration order. This is pure domain logic - no I/O, no side effects.
//
// Verdicts:
//   - empty condition: included
//   - condition evaluates: the evaluator's verdict
//   - condition fails (invalid expression, unknown field, type mismatch):
//     included, with a warning recording why (fail open, not closed)
func resolveDocuments(evaluator *condition.Evaluator, documents []ruleset.Document, applicant profile.Applicant) ([]ResolvedDocument, []Warning) {
	resolved := make([]ResolvedDocument, 0, len(documents))
	var warnings []Warning

	for _, doc := range documents {
		included := true
		if doc.Conditioned() {
			verdict, err := evaluator.Evaluate(doc.Condition, applicant)
			if err != nil {
				warnings = append(warnings, Warning{
					DocumentType: doc.Type,
					Condition:    doc.Condition,
					Reason:       err.Error(),
				})
			} else {
				included = verdict
			}
		}
		resolved = append(resolved, ResolvedDocument{Document: doc, Included: included})
	}

	return resolved, warnings
}
