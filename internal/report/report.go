/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package report consumes the finalized mutation list and renders it
// as the persisted mutations.json, output.csv, report.html (with
// mutation-report.css), and an optional console summary table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/hako/durafmt"
	"github.com/olekukonko/tablewriter"

	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/mutation"
	"github.com/kraken-mutate/mutantkraken/internal/report/internal"
)

// FileTotals is the per-file tally used by the HTML summary and the
// console table.
type FileTotals struct {
	FilePath string
	Killed   int
	Survived int
	Other    int
	Total    int
}

// Score returns killed/(killed+survived) as a percentage, excluding
// BuildFailed/Timeout/Failed from the denominator: those are
// inconclusive runs, not a judgment of test efficacy.
func (f FileTotals) Score() float64 {
	denom := f.Killed + f.Survived
	if denom == 0 {
		return 0
	}

	return float64(f.Killed) / float64(denom) * 100
}

// Results is every mutation from one run, grouped by file for reporting.
type Results struct {
	ProjectRoot string
	ByFile      []*mutation.FileMutations
	Elapsed     time.Duration
}

// Flat returns every mutation across every file, in file-then-generation order.
func (r Results) Flat() []*mutation.Mutation {
	var out []*mutation.Mutation
	for _, fm := range r.ByFile {
		out = append(out, fm.Mutations...)
	}

	return out
}

// Totals computes FileTotals for every file in r, sorted by path.
func (r Results) Totals() []FileTotals {
	totals := make([]FileTotals, 0, len(r.ByFile))
	for _, fm := range r.ByFile {
		t := FileTotals{FilePath: fm.FilePath}
		for _, m := range fm.Mutations {
			t.Total++
			switch m.Result() {
			case mutation.Killed:
				t.Killed++
			case mutation.Survived:
				t.Survived++
			default:
				t.Other++
			}
		}
		totals = append(totals, t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].FilePath < totals[j].FilePath })

	return totals
}

// counts is the run-wide breakdown by mutation.Result.
type counts struct {
	killed, survived, buildFailed, timeout, failed int
}

func (r Results) counts() counts {
	var c counts
	for _, m := range r.Flat() {
		switch m.Result() {
		case mutation.Killed:
			c.killed++
		case mutation.Survived:
			c.survived++
		case mutation.BuildFailed:
			c.buildFailed++
		case mutation.Timeout:
			c.timeout++
		case mutation.Failed:
			c.failed++
		}
	}

	return c
}

// OverallScore is the mutation score across every file in r, per the
// same killed/(killed+survived) rule as FileTotals.Score.
func (r Results) OverallScore() float64 {
	c := r.counts()
	if c.killed+c.survived == 0 {
		return 0
	}

	return float64(c.killed) / float64(c.killed+c.survived) * 100
}

func (r Results) operatorStatistics() internal.OperatorStatistics {
	var s internal.OperatorStatistics
	for _, m := range r.Flat() {
		switch m.Operator() {
		case "ArithmeticReplacement":
			s.ArithmeticReplacement++
		case "RelationalReplacement":
			s.RelationalReplacement++
		case "LogicalReplacement":
			s.LogicalReplacement++
		case "AssignmentReplacement":
			s.AssignmentReplacement++
		case "UnaryReplacement":
			s.UnaryReplacement++
		case "UnaryRemoval":
			s.UnaryRemoval++
		case "NotNullAssertion":
			s.NotNullAssertion++
		case "ElvisRemove":
			s.ElvisRemove++
		case "ElvisLiteralChange":
			s.ElvisLiteralChange++
		case "LiteralChange":
			s.LiteralChange++
		case "ExceptionChange":
			s.ExceptionChange++
		case "WhenRemoveBranch":
			s.WhenRemoveBranch++
		case "RemoveLabel":
			s.RemoveLabel++
		case "FunctionalBinaryReplacement":
			s.FunctionalBinaryReplacement++
		case "FunctionalReplacement":
			s.FunctionalReplacement++
		}
	}

	return s
}

func (r Results) asOutputResult() internal.OutputResult {
	c := r.counts()
	files := make([]internal.OutputFile, 0, len(r.ByFile))
	for _, fm := range r.ByFile {
		of := internal.OutputFile{Filename: fm.FilePath}
		for _, m := range fm.Mutations {
			of.Mutations = append(of.Mutations, internal.Mutation{
				Operator: string(m.Operator()),
				Result:   m.Result().String(),
				Line:     m.LineNumber(),
			})
		}
		files = append(files, of)
	}

	return internal.OutputResult{
		ProjectRoot:        r.ProjectRoot,
		Files:              files,
		OverallScore:       r.OverallScore(),
		MutantsTotal:       len(r.Flat()),
		MutantsKilled:      c.killed,
		MutantsSurvived:    c.survived,
		MutantsBuildFailed: c.buildFailed,
		MutantsTimeout:     c.timeout,
		MutantsFailed:      c.failed,
		ElapsedTimeSeconds: r.Elapsed.Seconds(),
		OperatorStatistics: r.operatorStatistics(),
	}
}

// WriteJSON writes the full mutations.json record to path.
func WriteJSON(path string, results Results) error {
	out, err := json.MarshalIndent(results.asOutputResult(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, out, 0o644) //nolint:gosec // report output, not sensitive
}

// WriteCSV writes one row per mutant to path, excluding the mutant id
// and byte offsets by convention: file, line, operator, old text, new
// text, result.
func WriteCSV(path string, results Results) (err error) {
	f, err := os.Create(path) //nolint:gosec // report output path is engine-controlled
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = fmt.Fprintln(f, "file,line,operator,old_text,new_text,result"); err != nil {
		return err
	}
	for _, m := range results.Flat() {
		_, err = fmt.Fprintf(f, "%s,%d,%s,%q,%q,%s\n",
			m.FilePath(), m.LineNumber(), m.Operator(), m.OldText(), m.NewText(), m.Result())
		if err != nil {
			return err
		}
	}

	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>mutation report</title>
<link rel="stylesheet" href="mutation-report.css">
</head>
<body>
<h1>Mutation report</h1>
<p>Overall score: <span class="score">%.2f%%</span></p>
<table>
<thead><tr><th>File</th><th>Killed</th><th>Survived</th><th>Other</th><th>Score</th></tr></thead>
<tbody>
%s</tbody>
</table>
</body>
</html>
`

const cssStylesheet = `body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.score { font-weight: bold; }
tr.good { background: #e6ffed; }
tr.bad { background: #ffeef0; }
`

// WriteHTML writes report.html to htmlPath and mutation-report.css to
// cssPath, summarizing per-file totals, killed, survived, and score.
func WriteHTML(htmlPath, cssPath string, results Results) error {
	var rows string
	for _, t := range results.Totals() {
		class := "bad"
		if t.Score() >= 50 {
			class = "good"
		}
		rows += fmt.Sprintf("<tr class=%q><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%.2f%%</td></tr>\n",
			class, t.FilePath, t.Killed, t.Survived, t.Other, t.Score())
	}
	html := fmt.Sprintf(htmlTemplate, results.OverallScore(), rows)

	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil { //nolint:gosec
		return err
	}

	return os.WriteFile(cssPath, []byte(cssStylesheet), 0o644) //nolint:gosec
}

// WriteConsoleTable renders the per-file totals to w as an ASCII table.
func WriteConsoleTable(w io.Writer, results Results) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Killed", "Survived", "Other", "Score"})
	for _, t := range results.Totals() {
		table.Append([]string{
			t.FilePath,
			fmt.Sprintf("%d", t.Killed),
			fmt.Sprintf("%d", t.Survived),
			fmt.Sprintf("%d", t.Other),
			fmt.Sprintf("%.2f%%", t.Score()),
		})
	}
	table.Render()
}

// Paths is where Do writes its four artifacts, normally all rooted at
// the engine's output directory.
type Paths struct {
	MutationsJSON string
	CSV           string
	HTML          string
	CSS           string
}

// Do renders results to every configured artifact and logs the
// run summary. displayTable additionally prints the console table.
func Do(results Results, paths Paths, displayTable bool, consoleOut io.Writer) error {
	if len(results.ByFile) == 0 {
		log.Infof("no results to report")

		return nil
	}

	if err := WriteJSON(paths.MutationsJSON, results); err != nil {
		log.Errorf("writing mutations record: %s", err)
	}
	if err := WriteCSV(paths.CSV, results); err != nil {
		log.Errorf("writing csv output: %s", err)
	}
	if err := WriteHTML(paths.HTML, paths.CSS, results); err != nil {
		log.Errorf("writing html report: %s", err)
	}

	c := results.counts()
	elapsed := durafmt.Parse(results.Elapsed).LimitFirstN(2)
	log.Infof("mutation testing completed in %s", elapsed.String())
	log.Infof("killed: %d, survived: %d, build failed: %d, timeout: %d, failed: %d",
		c.killed, c.survived, c.buildFailed, c.timeout, c.failed)
	log.Infof("mutation score: %.2f%%", results.OverallScore())

	if displayTable && consoleOut != nil {
		WriteConsoleTable(consoleOut, results)
	}

	return nil
}
