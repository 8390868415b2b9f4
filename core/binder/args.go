// Package binder maps command line arguments onto a command's declared
// parameters: it classifies raw tokens, evaluates positional parameter
// sets and runs the phased binding that narrows the valid sets down.
package binder

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/nutshell-sh/nutshell/core/command"
)

// Extent locates an argument in its source line for error reporting.
type Extent struct {
	// Text is the raw source text of the token.
	Text string
	// Offset is the byte offset in the source line, -1 when unknown.
	Offset int
}

// RawArg is one argument as the front end hands it over: either a
// plain token or a splatted table that expands into named arguments.
type RawArg struct {
	Text string
	// Splat, when non-nil, expands into one named argument per key.
	Splat  map[string]any
	Offset int
}

// Raw wraps a plain token without source position.
func Raw(text string) RawArg {
	return RawArg{Text: text, Offset: -1}
}

// RawList wraps plain tokens without source positions.
func RawList(texts ...string) []RawArg {
	out := make([]RawArg, 0, len(texts))
	for _, t := range texts {
		out = append(out, Raw(t))
	}
	return out
}

// Arg is one classified argument.
type Arg struct {
	// Name is the parameter name the token carried, without the dash.
	Name          string
	NameSpecified bool
	// Value is the argument value. For synthesized switch arguments it
	// is the bool true.
	Value          any
	ValueSpecified bool
	// FromSplat marks arguments expanded from a splatted table. They
	// lose silently against explicitly written arguments.
	FromSplat bool
	Extent    Extent
}

// Reparse classifies raw tokens against the command's parameter
// metadata. Parameter-shaped tokens become named arguments, switch
// parameters synthesize a true value, "-Name:Value" splits, and a
// value-taking parameter pairs with the following plain token.
//
// Tokens naming no declared parameter pass through so a later binding
// stage, or the command itself, can claim them. Splatted tables expand
// after the ordinary tokens, one named argument per key in sorted
// order.
func Reparse(meta *command.Metadata, raw []RawArg) ([]Arg, error) {
	var ordinary, splats []RawArg
	for _, r := range raw {
		if r.Splat != nil {
			splats = append(splats, r)
		} else {
			ordinary = append(ordinary, r)
		}
	}

	var out []Arg
	for i := 0; i < len(ordinary); i++ {
		tok := ordinary[i]
		ext := Extent{Text: tok.Text, Offset: tok.Offset}

		name, inline, ok := splitParameterToken(tok.Text)
		if !ok {
			out = append(out, Arg{Value: tok.Text, ValueSpecified: true, Extent: ext})
			continue
		}

		arg := Arg{Name: name, NameSpecified: true, Extent: ext}
		param, err := meta.Resolve(name)
		if err != nil {
			return nil, err
		}

		switch {
		case inline != nil:
			arg.Value = *inline
			arg.ValueSpecified = true

		case param != nil && param.Type == command.TypeSwitch:
			arg.Value = true
			arg.ValueSpecified = true

		case i+1 < len(ordinary) && !isParameterToken(ordinary[i+1].Text):
			i++
			arg.Value = ordinary[i].Text
			arg.ValueSpecified = true

		case param != nil:
			return nil, &BindError{
				Code:      CodeMissingArgument,
				Parameter: param.Name,
				Extent:    ext,
			}
		}
		out = append(out, arg)
	}

	for _, s := range splats {
		keys := make([]string, 0, len(s.Splat))
		for k := range s.Splat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, Arg{
				Name:           k,
				NameSpecified:  true,
				Value:          s.Splat[k],
				ValueSpecified: true,
				FromSplat:      true,
				Extent:         Extent{Text: s.Text, Offset: s.Offset},
			})
		}
	}
	return out, nil
}

// isParameterToken reports whether text is parameter-shaped: a dash
// followed by a letter. Dashed numbers like "-123" stay values.
func isParameterToken(text string) bool {
	if len(text) < 2 || text[0] != '-' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[1:])
	return unicode.IsLetter(r)
}

// splitParameterToken splits parameter-shaped text into its name and
// an optional inline ":value" part.
func splitParameterToken(text string) (name string, inline *string, ok bool) {
	if !isParameterToken(text) {
		return "", nil, false
	}
	rest := text[1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == ':' {
			val := rest[i+1:]
			return rest[:i], &val, true
		}
	}
	return rest, nil, true
}
