package operator

import "github.com/kraken-mutate/mutantkraken/internal/mutation"

// The fifteen shipped operator names, matching the RunConfig
// "operators" list and the registry's config key.
const (
	NameArithmeticReplacement       mutation.Operator = "ArithmeticReplacement"
	NameRelationalReplacement       mutation.Operator = "RelationalReplacement"
	NameLogicalReplacement          mutation.Operator = "LogicalReplacement"
	NameAssignmentReplacement       mutation.Operator = "AssignmentReplacement"
	NameUnaryReplacement            mutation.Operator = "UnaryReplacement"
	NameUnaryRemoval                mutation.Operator = "UnaryRemoval"
	NameNotNullAssertion            mutation.Operator = "NotNullAssertion"
	NameElvisRemove                 mutation.Operator = "ElvisRemove"
	NameElvisLiteralChange          mutation.Operator = "ElvisLiteralChange"
	NameLiteralChange               mutation.Operator = "LiteralChange"
	NameExceptionChange             mutation.Operator = "ExceptionChange"
	NameWhenRemoveBranch            mutation.Operator = "WhenRemoveBranch"
	NameRemoveLabel                 mutation.Operator = "RemoveLabel"
	NameFunctionalBinaryReplacement mutation.Operator = "FunctionalBinaryReplacement"
	NameFunctionalReplacement       mutation.Operator = "FunctionalReplacement"
)
