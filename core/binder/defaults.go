package binder

import "github.com/nutshell-sh/nutshell/core/command"

// DefaultEvaluator produces the value of a parameter's default value
// expression. The interpreter installs an evaluator that expands
// variables and splits lists; the binder never sees one for parameters
// whose expression is empty, those bind nil directly.
type DefaultEvaluator interface {
	Evaluate(p *command.Parameter) (any, error)
}

// LiteralDefaults treats every default expression as a literal string,
// leaving conversion to the type checker. It is the fallback when no
// interpreter-provided evaluator is wired in.
type LiteralDefaults struct{}

// Evaluate implements DefaultEvaluator.Evaluate.
func (LiteralDefaults) Evaluate(p *command.Parameter) (any, error) {
	return p.Default, nil
}

var _ DefaultEvaluator = LiteralDefaults{}
