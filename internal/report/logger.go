// Package report formats and outputs mutation testing results.
package report

import (
	"errors"

	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
)

// Filter maps mutation results to filter which mutants are logged.
type Filter = map[mutation.Result]struct{}

// ErrInvalidFilter is returned when an invalid status filter string is provided.
var ErrInvalidFilter = errors.New("invalid statuses filter, only 'ksbtf' letters allowed")

// MutantLogger prints mutant results based on a status filter.
type MutantLogger struct {
	Filter
}

// NewLogger creates a MutantLogger from a status filter string made of
// 'ksbtf' letters. An invalid string is logged as a warning and leaves
// the filter empty, so every result is printed.
func NewLogger(outputStatuses string) MutantLogger {
	f, err := ParseFilter(outputStatuses)
	if err != nil {
		log.Warnf("output-statuses filter not applied: %s", err)
	}

	return MutantLogger{
		Filter: f,
	}
}

// Mutant logs m's result if it passes the filter.
func (l MutantLogger) Mutant(m *mutation.Mutation) {
	if l.Filter == nil {
		log.Mutation(m)

		return
	}

	if _, ok := l.Filter[m.Result()]; ok {
		log.Mutation(m)
	}
}

// ParseFilter parses a status filter string into a Filter map.
// Valid characters are 'ksbtf': killed, survived, build-failed, timeout, failed.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return nil, nil
	}

	result := Filter{}

	for _, r := range s {
		switch r {
		case 'k':
			result[mutation.Killed] = struct{}{}
		case 's':
			result[mutation.Survived] = struct{}{}
		case 'b':
			result[mutation.BuildFailed] = struct{}{}
		case 't':
			result[mutation.Timeout] = struct{}{}
		case 'f':
			result[mutation.Failed] = struct{}{}
		default:
			return nil, ErrInvalidFilter
		}
	}

	return result, nil
}
