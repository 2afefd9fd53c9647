// Package analysis statically checks a card pool before it is ever
// played: structural validity of every effect tree, and an event-graph
// scan for trigger loops that the runtime credit budgets would otherwise
// have to cut short mid-game.
package analysis

import "fmt"

// Severity ranks a finding. Errors make a pool unfit to load; warnings
// flag designs that rely on runtime budgets to terminate.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is one analyzer result tied to a card.
type Finding struct {
	Card     string
	Code     string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s [%s]: %s", f.Severity, f.Card, f.Code, f.Message)
}

// Report collects the findings of one pool scan.
type Report struct {
	Findings []Finding
}

// OK reports whether the pool carries no errors. Warnings do not fail a
// pool.
func (r *Report) OK() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns error-severity findings only.
func (r *Report) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns warning-severity findings only.
func (r *Report) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) errorf(card, code, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Card: card, Code: code, Severity: SeverityError,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) warnf(card, code, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Card: card, Code: code, Severity: SeverityWarning,
		Message: fmt.Sprintf(format, args...),
	})
}
