package shell

import (
	"fmt"
	"os"

	"github.com/anmitsu/go-shlex"

	"github.com/nutshell-sh/nutshell/core/binder"
	"github.com/nutshell-sh/nutshell/core/command"
)

// shellDefaults evaluates parameter default expressions against the
// session: $name references expand, list typed defaults split into
// words.
type shellDefaults struct {
	shell *Shell
}

// Evaluate implements binder.DefaultEvaluator.Evaluate.
func (d *shellDefaults) Evaluate(p *command.Parameter) (any, error) {
	expanded := os.Expand(p.Default, d.shell.expandVar)
	if p.Type == command.TypeStringSlice {
		words, err := shlex.Split(expanded, true)
		if err != nil {
			return nil, fmt.Errorf("default for -%s: %w", p.Name, err)
		}
		return words, nil
	}
	return expanded, nil
}

var _ binder.DefaultEvaluator = (*shellDefaults)(nil)
