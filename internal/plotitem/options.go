package plotitem

import (
	"fmt"
	"strconv"
	"strings"
)

// Option names.
const (
	KeyTitle  = "title"
	KeyWith   = "with"
	KeyAxes   = "axes"
	KeyUsing  = "using"
	KeyEvery  = "every"
	KeyIndex  = "index"
	KeySmooth = "smooth"
	KeyBinary = "binary"
	KeyInline = "inline"

	// keyCols is consumed by the Data constructors and is not settable later.
	keyCols = "cols"
)

// clauseOrder is the order option clauses appear in a fragment.
var clauseOrder = []string{KeyBinary, KeyIndex, KeyUsing, KeyEvery, KeySmooth, KeyTitle, KeyAxes, KeyWith}

// Option is a named option value. A nil Value clears the option.
type Option struct {
	Key   string
	Value any
}

// Untitled is the title value that renders as "notitle".
type Untitled struct{}

// Title sets the legend title.
func Title(s string) Option { return Option{Key: KeyTitle, Value: s} }

// NoTitle suppresses the legend entry.
func NoTitle() Option { return Option{Key: KeyTitle, Value: Untitled{}} }

// With sets the render style, e.g. "lines" or "lp lt 4 lw 4".
func With(style string) Option { return Option{Key: KeyWith, Value: style} }

// Axes selects the axis pair: x1y1, x1y2, x2y1 or x2y2.
func Axes(pair string) Option { return Option{Key: KeyAxes, Value: pair} }

// Using selects columns: an int, []int, or a raw selector string.
func Using(sel any) Option { return Option{Key: KeyUsing, Value: sel} }

// Every selects a point stride: an int, []int, []any with nil holes, or a
// raw selector string.
func Every(sel any) Option { return Option{Key: KeyEvery, Value: sel} }

// Index selects data blocks: an int, []int, []any with nil holes, or a raw
// selector string.
func Index(sel any) Option { return Option{Key: KeyIndex, Value: sel} }

// Smooth sets a smoothing mode, e.g. "csplines".
func Smooth(mode string) Option { return Option{Key: KeySmooth, Value: mode} }

// Binary switches between binary and text transfer.
func Binary(on bool) Option { return Option{Key: KeyBinary, Value: on} }

// BinaryFormat marks a file as binary with an explicit gnuplot binary
// specification, e.g. `matrix format="%float64"`.
func BinaryFormat(spec string) Option { return Option{Key: KeyBinary, Value: spec} }

// Inline switches between inline and file-backed transfer.
func Inline(on bool) Option { return Option{Key: KeyInline, Value: on} }

// Cols selects columns of the data at construction time (Data only).
func Cols(idx ...int) Option { return Option{Key: keyCols, Value: idx} }

// rule validates a value and renders its clause. An empty clause means the
// option is set but contributes nothing to the fragment.
type rule func(v any) (clause string, err error)

var (
	commonRules = map[string]rule{
		KeyTitle: titleRule,
		KeyWith:  stringRule("with"),
		KeyAxes:  axesRule,
	}
	fileRules = merge(commonRules, map[string]rule{
		KeyUsing:  usingRule,
		KeyEvery:  selectorRule("every", 6),
		KeyIndex:  selectorRule("index", 3),
		KeySmooth: smoothRule,
	})

	optionTable = map[Kind]map[string]rule{
		KindFunc: commonRules,
		KindFile: merge(fileRules, map[string]rule{KeyBinary: binaryRule}),
		KindData: merge(fileRules, map[string]rule{KeyInline: boolRule}),
		KindGrid: merge(fileRules, map[string]rule{KeyInline: boolRule, KeyBinary: boolRule}),
	}
)

// LegalOptions returns the option keys accepted by kind.
func LegalOptions(kind Kind) []string {
	rules := optionTable[kind]
	keys := make([]string, 0, len(rules))
	for _, k := range clauseOrder {
		if _, ok := rules[k]; ok {
			keys = append(keys, k)
		}
	}
	if _, ok := rules[KeyInline]; ok {
		keys = append(keys, KeyInline)
	}
	return keys
}

func merge(ms ...map[string]rule) map[string]rule {
	out := make(map[string]rule)
	for _, m := range ms {
		for k, r := range m {
			out[k] = r
		}
	}
	return out
}

type invalid string

func (e invalid) Error() string { return string(e) }

func titleRule(v any) (string, error) {
	switch t := v.(type) {
	case Untitled:
		return "notitle", nil
	case string:
		return "title " + Quote(t), nil
	default:
		return "", invalid("title must be a string or Untitled")
	}
}

func stringRule(name string) rule {
	return func(v any) (string, error) {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return "", invalid(name + " must be a non-empty string")
		}
		return name + " " + s, nil
	}
}

var legalAxes = map[string]bool{"x1y1": true, "x1y2": true, "x2y1": true, "x2y2": true}

func axesRule(v any) (string, error) {
	s, ok := v.(string)
	if !ok || !legalAxes[s] {
		return "", invalid("axes must be one of x1y1, x1y2, x2y1, x2y2")
	}
	return "axes " + s, nil
}

var legalSmooth = map[string]bool{
	"unique": true, "frequency": true, "fnormal": true, "cumulative": true, "cnormal": true,
	"kdensity": true, "csplines": true, "acsplines": true, "mcsplines": true, "bezier": true,
	"sbezier": true, "path": true, "bins": true, "unwrap": true, "zsort": true,
}

func smoothRule(v any) (string, error) {
	s, ok := v.(string)
	fields := strings.Fields(s)
	if !ok || len(fields) == 0 || !legalSmooth[fields[0]] {
		return "", invalid("unknown smoothing mode")
	}
	return "smooth " + s, nil
}

func usingRule(v any) (string, error) {
	switch u := v.(type) {
	case int:
		if u < 0 {
			return "", invalid("column numbers cannot be negative")
		}
		return "using " + strconv.Itoa(u), nil
	case []int:
		if len(u) == 0 {
			return "", invalid("empty column list")
		}
		parts := make([]string, len(u))
		for i, c := range u {
			if c < 0 {
				return "", invalid("column numbers cannot be negative")
			}
			parts[i] = strconv.Itoa(c)
		}
		return "using " + strings.Join(parts, ":"), nil
	case string:
		if strings.TrimSpace(u) == "" {
			return "", invalid("empty column selector")
		}
		return "using " + u, nil
	default:
		return "", invalid("using must be an int, []int or string")
	}
}

// selectorRule renders colon-separated selectors. Structured forms are
// forwarded field by field with nil fields left empty; raw strings are
// forwarded unchanged.
func selectorRule(name string, maxFields int) rule {
	return func(v any) (string, error) {
		var fields []string
		switch s := v.(type) {
		case int:
			fields = []string{strconv.Itoa(s)}
		case string:
			if strings.TrimSpace(s) == "" {
				return "", invalid("empty " + name + " selector")
			}
			return name + " " + s, nil
		case []int:
			for _, f := range s {
				fields = append(fields, strconv.Itoa(f))
			}
		case []any:
			for _, f := range s {
				switch n := f.(type) {
				case nil:
					fields = append(fields, "")
				case int:
					fields = append(fields, strconv.Itoa(n))
				default:
					return "", invalid(fmt.Sprintf("%s fields must be int or nil, got %T", name, f))
				}
			}
		default:
			return "", invalid(name + " must be an int, []int, []any or string")
		}

		if len(fields) == 0 || len(fields) > maxFields {
			return "", invalid(fmt.Sprintf("%s takes 1 to %d fields, got %d", name, maxFields, len(fields)))
		}
		return name + " " + strings.Join(fields, ":"), nil
	}
}

func boolRule(v any) (string, error) {
	if _, ok := v.(bool); !ok {
		return "", invalid("value must be a bool")
	}
	return "", nil
}

func binaryRule(v any) (string, error) {
	switch b := v.(type) {
	case bool:
		if b {
			return "binary", nil
		}
		return "", nil
	case string:
		return strings.TrimSpace("binary " + b), nil
	default:
		return "", invalid("binary must be a bool or a format string")
	}
}
