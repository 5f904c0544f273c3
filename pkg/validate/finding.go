// Package validate checks physical-file objects for structural and semantic
// problems and collects them as findings.
package validate

import (
	"fmt"

	"github.com/odvcencio/ssphys/pkg/record"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Problem classifies a finding.
type Problem string

const (
	ProblemUnknownKind    Problem = "unknown-kind"
	ProblemInvalidPayload Problem = "invalid-payload"
	ProblemChecksum       Problem = "checksum"
	ProblemBrokenChain    Problem = "broken-chain"
	ProblemChainTooLong   Problem = "chain-too-long"
	ProblemItem           Problem = "item"
	ProblemHistory        Problem = "history"
	ProblemFlags          Problem = "flags"
	ProblemSignature      Problem = "signature"
	ProblemTruncated      Problem = "truncated"
)

// Finding is one problem tied to a byte offset.
type Finding struct {
	Severity Severity
	Problem  Problem
	Offset   int64
	Kind     record.Kind
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("0x%08x %s %s [%s]: %s", f.Offset, f.Severity, f.Problem, f.Kind, f.Message)
}

// Report accumulates the findings for one file.
type Report struct {
	File     string
	Records  int
	Findings []Finding
}

// OK reports whether no finding of any severity was recorded.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

// Errors counts error-severity findings.
func (r *Report) Errors() int { return r.count(Error) }

// Warnings counts warning-severity findings.
func (r *Report) Warnings() int { return r.count(Warning) }

func (r *Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// Add appends a finding.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}
