package report_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/report"
)

func Test_parseFilter(t *testing.T) {
	tests := []struct {
		filter string
		want   report.Filter
		err    error
	}{
		{
			filter: "ks",
			want: report.Filter{
				mutation.Killed:   struct{}{},
				mutation.Survived: struct{}{},
			},
		},
		{
			filter: "btf",
			want: report.Filter{
				mutation.BuildFailed: struct{}{},
				mutation.Timeout:     struct{}{},
				mutation.Failed:      struct{}{},
			},
		},
		{
			filter: "",
		},
		{
			filter: "kx",
			want:   nil,
			err:    report.ErrInvalidFilter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := report.ParseFilter(tt.filter)
			if !errors.Is(err, tt.err) {
				t.Errorf("ParseFilter() error = %v, wantErr %v", err, tt.err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFilter() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogger_filtersByResult(t *testing.T) {
	out := &bytes.Buffer{}
	log.Init(log.Info, out, filepath.Join(t.TempDir(), "mutant-kraken.log"))
	defer log.Reset()

	killed := newMutation(t, "aFolder/aFile.kt", 12, "ArithmeticReplacement", mutation.Killed)
	survived := newMutation(t, "aFolder/aFile.kt", 12, "ArithmeticReplacement", mutation.Survived)

	logger := report.NewLogger("")
	logger.Mutant(killed) // no filter: printed

	logger = report.NewLogger("k")
	logger.Mutant(killed)   // Killed passes the filter
	logger.Mutant(survived) // Survived is filtered out

	got := out.String()
	if want := "ArithmeticReplacement"; !bytesContainsN(got, want, 2) {
		t.Fatalf("expected exactly 2 logged mutants, got %q", got)
	}
}

func TestLogger_warnsOnInvalidFilter(t *testing.T) {
	out := &bytes.Buffer{}
	log.Init(log.Info, out, filepath.Join(t.TempDir(), "mutant-kraken.log"))
	defer log.Reset()

	report.NewLogger("xyz")

	if !bytesContainsN(out.String(), "output-statuses filter not applied", 1) {
		t.Fatalf("expected a filter-rejection warning, got %q", out.String())
	}
}

func bytesContainsN(haystack, needle string, n int) bool {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}

	return count == n
}
