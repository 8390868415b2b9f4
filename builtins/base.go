// Package builtins hosts the interpreter's built in verb-noun
// commands. Each command declares its parameters as metadata the
// binder understands and registers itself at init time.
package builtins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/nutshell-sh/nutshell/core/binder"
	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
)

// Namespaces builtins are grouped under for qualified lookups.
const (
	NamespaceCore       = "core"
	NamespaceManagement = "management"
	NamespaceUtility    = "utility"
)

// AllBuiltins holds every registered builtin keyed by lowercase name.
var AllBuiltins = make(map[string]*session.Builtin)

// mustAdd registers a builtin under its command name.
func mustAdd(b *session.Builtin) {
	key := strings.ToLower(b.Name())
	if _, ok := AllBuiltins[key]; ok {
		panic(fmt.Sprintf("duplicate builtin %q", b.Name()))
	}
	AllBuiltins[key] = b
}

// All returns the registered builtins sorted by name.
func All() []*session.Builtin {
	out := make([]*session.Builtin, 0, len(AllBuiltins))
	for _, b := range AllBuiltins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
	})
	return out
}

// newBuiltin assembles a registered command. Builtins are defined at
// the lowest trust level so they stay visible in restricted sessions.
func newBuiltin(name, namespace, summary string, meta *command.Metadata, run session.Action) *session.Builtin {
	return &session.Builtin{
		BuiltinInfo: &command.BuiltinInfo{
			BuiltinName: name,
			Namespace:   namespace,
			Params:      meta,
			Mode:        command.TrustRestricted,
			Summary:     summary,
		},
		Run: run,
	}
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
)

// colorParameter declares the shared -Color parameter.
func colorParameter() *command.Parameter {
	return command.NewParameter("Color", command.TypeString).
		WithDefault(colorAuto).
		WithValidator(oneOf(colorAlways, colorAuto, colorNever)).
		WithHelp("colorize the output (always|auto|never)")
}

func oneOf(allowed ...string) func(any) error {
	return func(v any) error {
		s, _ := v.(string)
		for _, a := range allowed {
			if strings.EqualFold(s, a) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}

// ColorPrinter decides whether listing output gets colored.
type ColorPrinter struct {
	value string
}

// NewColorPrinter reads the -Color argument off a completed binding.
func NewColorPrinter(args *binder.Report) *ColorPrinter {
	return &ColorPrinter{value: strings.ToLower(args.GetString("Color"))}
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.value {
	case colorNever:
		return false
	case colorAlways:
		return true
	default:
		return !color.NoColor
	}
}

func (c *ColorPrinter) Sprintf(col *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		return col.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
