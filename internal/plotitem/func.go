package plotitem

import "strings"

// Func plots an expression gnuplot evaluates itself, such as "sin(x)".
type Func struct {
	*base
	expr string
}

// NewFunc creates a function item.
func NewFunc(expr string, opts ...Option) (*Func, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &OptionError{Kind: KindFunc, Key: "expression", Value: expr, Reason: "empty expression"}
	}

	f := &Func{base: newBase(KindFunc), expr: expr}
	f.render = func(Env) (rendering, error) {
		return rendering{source: f.expr}, nil
	}
	if err := f.SetOptions(opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Expression returns the function expression.
func (f *Func) Expression() string {
	return f.expr
}
