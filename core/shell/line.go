package shell

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/nutshell-sh/nutshell/core/binder"
)

// call is one parsed command invocation: the command word, its raw
// arguments and any VAR=value assignment prefixes.
type call struct {
	name   string
	extent binder.Extent
	args   []binder.RawArg

	assigns []assign
}

type assign struct {
	key   string
	value string
}

// parseSource parses shell input into statements and checks their
// shape. Only simple commands are accepted, the interpreter has no
// control flow of its own. Word expansion waits until right before a
// statement executes, so earlier statements are visible to later ones.
func (s *Shell) parseSource(name string, src io.Reader) ([]*syntax.CallExpr, error) {
	file, err := syntax.NewParser().Parse(src, name)
	if err != nil {
		return nil, err
	}

	var out []*syntax.CallExpr
	for _, stmt := range file.Stmts {
		cmd, err := parseStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

func parseStatement(stmt *syntax.Stmt) (*syntax.CallExpr, error) {
	if len(stmt.Redirs) > 0 {
		return nil, unsupportedSyntax(stmt.Redirs[0])
	}
	if stmt.Background || stmt.Negated {
		return nil, unsupportedSyntax(stmt)
	}

	cmd, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok {
		return nil, unsupportedSyntax(stmt)
	}
	for _, assmt := range cmd.Assigns {
		if assmt.Name == nil {
			return nil, unsupportedSyntax(assmt)
		}
	}
	return cmd, nil
}

// evalCall expands one statement's words against the current session
// state. Assignment values and arguments expand before the assignments
// take effect, the way POSIX shells order it.
func (s *Shell) evalCall(cmd *syntax.CallExpr) (call, error) {
	var c call
	for _, assmt := range cmd.Assigns {
		value, err := s.evalWord(assmt.Value)
		if err != nil {
			return call{}, err
		}
		c.assigns = append(c.assigns, assign{key: assmt.Name.Value, value: value})
	}

	for i, word := range cmd.Args {
		if i == 0 {
			text, err := s.evalWord(word)
			if err != nil {
				return call{}, err
			}
			c.name = text
			c.extent = binder.Extent{Text: text, Offset: wordOffset(word)}
			continue
		}

		raw, err := s.evalArg(word)
		if err != nil {
			return call{}, err
		}
		c.args = append(c.args, raw...)
	}
	return c, nil
}

// evalArg turns one argument word into raw arguments. Splat references
// expand here: "@name" over a table becomes a splatted argument, over
// a list one positional argument per element.
func (s *Shell) evalArg(word *syntax.Word) ([]binder.RawArg, error) {
	if name, ok := splatName(word); ok {
		if v, found := s.Session.LookupVar(name); found {
			switch val := v.(type) {
			case map[string]any:
				return []binder.RawArg{{
					Text:   "@" + name,
					Splat:  val,
					Offset: wordOffset(word),
				}}, nil
			case []string:
				out := make([]binder.RawArg, 0, len(val))
				for _, el := range val {
					out = append(out, binder.RawArg{Text: el, Offset: wordOffset(word)})
				}
				return out, nil
			}
		}
		// No table to splat, the word stays a literal.
	}

	text, err := s.evalWord(word)
	if err != nil {
		return nil, err
	}
	return []binder.RawArg{{Text: text, Offset: wordOffset(word)}}, nil
}

func (s *Shell) evalWord(word *syntax.Word) (string, error) {
	if word == nil {
		return "", nil
	}
	var out []string
	for _, part := range word.Parts {
		subEval, err := s.evalWordPart(part)
		if err != nil {
			return "", err
		}
		out = append(out, subEval)
	}
	return strings.Join(out, ""), nil
}

func (s *Shell) evalWordPart(part syntax.WordPart) (string, error) {
	switch part := part.(type) {
	case *syntax.Lit:
		return part.Value, nil

	case *syntax.SglQuoted:
		return part.Value, nil

	case *syntax.DblQuoted:
		var out []string
		for _, subPart := range part.Parts {
			subEval, err := s.evalWordPart(subPart)
			if err != nil {
				return "", err
			}
			out = append(out, subEval)
		}
		return strings.Join(out, ""), nil

	case *syntax.ParamExp:
		if part.Param == nil {
			return "", unsupportedSyntax(part)
		}
		return s.expandVar(part.Param.Value), nil

	default:
		return "", unsupportedSyntax(part)
	}
}

// expandVar resolves a $name reference: session variables first, then
// the environment.
func (s *Shell) expandVar(name string) string {
	if name == "?" {
		return fmt.Sprintf("%d", s.lastRet)
	}
	if v, ok := s.Session.LookupVar(name); ok {
		return fmt.Sprint(v)
	}
	return s.Session.Env.Getenv(name)
}

// splatName reports the variable name of a "@name" word.
func splatName(word *syntax.Word) (string, bool) {
	if len(word.Parts) != 1 {
		return "", false
	}
	lit, ok := word.Parts[0].(*syntax.Lit)
	if !ok || len(lit.Value) < 2 || lit.Value[0] != '@' {
		return "", false
	}
	name := lit.Value[1:]
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return "", false
			}
		default:
			return "", false
		}
	}
	return name, true
}

func wordOffset(word *syntax.Word) int {
	return int(word.Pos().Offset())
}

func unsupportedSyntax(node syntax.Node) error {
	return fmt.Errorf("unsupported syntax near column %d", node.Pos().Col())
}
