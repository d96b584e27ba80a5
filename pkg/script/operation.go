package script

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/mitchellh/mapstructure"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// ParamType is the declared type of an operation parameter.
type ParamType int

const (
	String ParamType = iota
	Int
	Float
	Bool
	// StringList collects the remaining arguments when it is the last parameter.
	StringList
)

func (t ParamType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case StringList:
		return "string[]"
	default:
		return "string"
	}
}

// ValueType is what an operation returns to the script.
type ValueType int

const (
	ReturnsNothing ValueType = iota
	ReturnsBool
	ReturnsInt
	ReturnsString
	ReturnsMap
)

func (t ValueType) String() string {
	switch t {
	case ReturnsBool:
		return "bool"
	case ReturnsInt:
		return "int"
	case ReturnsString:
		return "string"
	case ReturnsMap:
		return "map"
	default:
		return "void"
	}
}

// Param declares one parameter of an operation.
type Param struct {
	Name     string
	Type     ParamType
	Optional bool
	Default  any
}

// Spec describes an operation as scripts see it.
type Spec struct {
	Name      string
	Doc       string
	Params    []Param
	Selection bool // Requires a selected branch
	Returns   ValueType
}

// Signature renders the spec as "name(a, b [, c])".
func (s Spec) Signature() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString("(")
	optional := 0
	for i, p := range s.Params {
		switch {
		case p.Optional && i > 0:
			b.WriteString(" [, ")
			optional++
		case p.Optional:
			b.WriteString("[")
			optional++
		case i > 0:
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteString(strings.Repeat("]", optional))
	b.WriteString(")")
	return b.String()
}

type operation[T any] struct {
	Spec
	neutral any
	run     func(t T, c *call) any
}

type table[T any] struct {
	facade string
	ops    map[string]*operation[T]
}

func newTable[T any](facade string, ops ...*operation[T]) *table[T] {
	t := &table[T]{facade: facade, ops: make(map[string]*operation[T], len(ops))}
	for _, op := range ops {
		if op.neutral == nil {
			op.neutral = neutralFor(op.Returns)
		}
		t.ops[op.Name] = op
	}
	return t
}

// neutralFor is what a failed call returns to the script.
func neutralFor(v ValueType) any {
	switch v {
	case ReturnsBool:
		return false
	case ReturnsInt:
		return -1
	case ReturnsString:
		return ""
	default:
		return nil
	}
}

func (t *table[T]) specs() []Spec {
	specs := make([]Spec, 0, len(t.ops))
	for _, op := range t.ops {
		specs = append(specs, op.Spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

func (t *table[T]) lookup(name string) (*operation[T], bool) {
	op, ok := t.ops[name]
	return op, ok
}

func (t *table[T]) names() []string {
	names := make([]string, 0, len(t.ops))
	for name := range t.ops {
		names = append(names, name)
	}
	return names
}

// env is what a dispatch needs from its façade.
type env struct {
	sc       ports.ScriptContext
	logger   *slog.Logger
	observer Observer
	// selected resolves the current branch for selection-scoped operations.
	selected func() ports.Branch
}

// call is the state of one operation invocation.
type call struct {
	*reporter
	ctx  context.Context
	args []any
	sel  ports.Branch
}

func (c *call) str(i int) string    { return c.args[i].(string) }
func (c *call) num(i int) int       { return c.args[i].(int) }
func (c *call) real(i int) float64  { return c.args[i].(float64) }
func (c *call) flag(i int) bool     { return c.args[i].(bool) }
func (c *call) list(i int) []string { return c.args[i].([]string) }

func dispatch[T any](ctx context.Context, t *table[T], target T, e env, name string, args []any) any {
	start := time.Now()
	rep := &reporter{op: name, sc: e.sc, logger: e.logger}
	defer func() {
		if e.observer != nil {
			e.observer.ObserveCall(CallEvent{
				Facade:   t.facade,
				Op:       name,
				Duration: time.Since(start),
				Errors:   rep.raised,
			})
		}
	}()

	op, ok := t.lookup(name)
	if !ok {
		if hint := suggest(name, t.names()); hint != "" {
			rep.fail(domain.KindSyntax, "Unknown operation %s.%s (did you mean %s?)", t.facade, name, hint)
		} else {
			rep.fail(domain.KindSyntax, "Unknown operation %s.%s", t.facade, name)
		}
		return nil
	}

	coerced, err := coerceArgs(op.Params, args)
	if err != nil {
		rep.fail(domain.KindSyntax, "%s: %v", op.Signature(), err)
		return op.neutral
	}

	c := &call{reporter: rep, ctx: ctx, args: coerced}
	if op.Selection {
		c.sel = e.selected()
		if c.sel == nil {
			rep.fail(domain.KindReference, "No branch selected")
			return op.neutral
		}
	}
	return op.run(target, c)
}

// coerceArgs converts loosely typed script values to the declared parameter types.
// A trailing StringList parameter absorbs all remaining arguments.
func coerceArgs(params []Param, args []any) ([]any, error) {
	if n := len(params); n > 0 && params[n-1].Type == StringList && len(args) > n {
		rest := make([]any, len(args)-(n-1))
		copy(rest, args[n-1:])
		args = append(args[:n-1:n-1], any(rest))
	}
	if len(args) > len(params) {
		return nil, fmt.Errorf("too many arguments (%d, want at most %d)", len(args), len(params))
	}

	out := make([]any, len(params))
	for i, p := range params {
		if i >= len(args) || args[i] == nil {
			if !p.Optional {
				return nil, fmt.Errorf("missing argument %s", p.Name)
			}
			out[i] = p.Default
			if p.Type == StringList && p.Default == nil {
				out[i] = []string{}
			}
			continue
		}
		v, err := coerce(p.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", p.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(t ParamType, v any) (any, error) {
	switch t {
	case Int:
		if fractional(v) {
			return 0, fmt.Errorf("cannot use %v (%T) as %s", v, v, t)
		}
		var n int
		err := mapstructure.WeakDecode(v, &n)
		return n, wrapDecode(err, t, v)
	case Float:
		var f float64
		err := mapstructure.WeakDecode(v, &f)
		return f, wrapDecode(err, t, v)
	case Bool:
		var b bool
		err := mapstructure.WeakDecode(v, &b)
		return b, wrapDecode(err, t, v)
	case StringList:
		var l []string
		err := mapstructure.WeakDecode(v, &l)
		if l == nil {
			l = []string{}
		}
		return l, wrapDecode(err, t, v)
	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
		var s string
		err := mapstructure.WeakDecode(v, &s)
		return s, wrapDecode(err, t, v)
	}
}

// fractional reports a float with a non-zero fractional part.
func fractional(v any) bool {
	switch f := v.(type) {
	case float64:
		return f != math.Trunc(f)
	case float32:
		return float64(f) != math.Trunc(float64(f))
	}
	return false
}

func wrapDecode(err error, t ParamType, v any) error {
	if err != nil {
		return fmt.Errorf("cannot use %v (%T) as %s", v, v, t)
	}
	return nil
}

// namedArgs orders named arguments by the declared parameters.
func namedArgs(params []Param, named map[string]any) ([]any, error) {
	args := make([]any, len(params))
	used := 0
	for i, p := range params {
		if v, ok := named[p.Name]; ok {
			args[i] = v
			used++
		}
	}
	if used != len(named) {
		for k := range named {
			if !hasParam(params, k) {
				return nil, fmt.Errorf("unknown argument %s", k)
			}
		}
	}
	// Trailing unset optionals must not count as explicit nils for a StringList.
	for len(args) > 0 && args[len(args)-1] == nil {
		args = args[:len(args)-1]
	}
	return args, nil
}

func hasParam(params []Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// suggest returns the candidate closest to name, if it is close enough to be a typo.
func suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if bestDist < 0 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/3) {
		return ""
	}
	return best
}
