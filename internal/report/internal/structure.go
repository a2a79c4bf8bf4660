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

// Package internal holds the serialization-only structs behind the
// engine's mutations.json, kept separate from the reporting logic so
// the on-disk shape can be reviewed without reading report.go.
package internal

// Mutation is a single mutant as it appears in the JSON record, one
// level flatter than mutation.Mutation: the fields a consumer of the
// persisted record actually needs.
type Mutation struct {
	Operator string `json:"operator"`
	Result   string `json:"result"`
	Line     int    `json:"line"`
}

// OutputFile groups every mutant produced from one source file.
type OutputFile struct {
	Filename  string     `json:"file_name"`
	Mutations []Mutation `json:"mutations"`
}

// OperatorStatistics tallies how many mutants each operator produced.
type OperatorStatistics struct {
	ArithmeticReplacement       int `json:"arithmetic_replacement,omitempty"`
	RelationalReplacement       int `json:"relational_replacement,omitempty"`
	LogicalReplacement          int `json:"logical_replacement,omitempty"`
	AssignmentReplacement       int `json:"assignment_replacement,omitempty"`
	UnaryReplacement            int `json:"unary_replacement,omitempty"`
	UnaryRemoval                int `json:"unary_removal,omitempty"`
	NotNullAssertion            int `json:"not_null_assertion,omitempty"`
	ElvisRemove                 int `json:"elvis_remove,omitempty"`
	ElvisLiteralChange          int `json:"elvis_literal_change,omitempty"`
	LiteralChange               int `json:"literal_change,omitempty"`
	ExceptionChange             int `json:"exception_change,omitempty"`
	WhenRemoveBranch            int `json:"when_remove_branch,omitempty"`
	RemoveLabel                 int `json:"remove_label,omitempty"`
	FunctionalBinaryReplacement int `json:"functional_binary_replacement,omitempty"`
	FunctionalReplacement       int `json:"functional_replacement,omitempty"`
}

// OutputResult is the full mutations.json record: every mutant,
// grouped by file, plus the run's summary statistics.
type OutputResult struct {
	ProjectRoot        string             `json:"project_root"`
	Files              []OutputFile       `json:"files"`
	OverallScore       float64            `json:"overall_score"`
	MutantsTotal       int                `json:"mutants_total"`
	MutantsKilled      int                `json:"mutants_killed"`
	MutantsSurvived    int                `json:"mutants_survived"`
	MutantsBuildFailed int                `json:"mutants_build_failed"`
	MutantsTimeout     int                `json:"mutants_timeout"`
	MutantsFailed      int                `json:"mutants_failed"`
	ElapsedTimeSeconds float64            `json:"elapsed_time_seconds"`
	OperatorStatistics OperatorStatistics `json:"operator_statistics"`
}
