package session

import (
	"slices"
	"strconv"

	"github.com/joaquinabian/gnuplot-go/internal/plotitem"
)

// DefaultHardcopyTerminal is used when HardcopyOptions.Terminal is empty.
const DefaultHardcopyTerminal = "postscript"

// Hardcopy option keys.
const (
	optMode      = "mode"
	optEPS       = "eps"
	optEnhanced  = "enhanced"
	optColor     = "color"
	optSolid     = "solid"
	optDuplexing = "duplexing"
	optFontName  = "fontname"
	optFontSize  = "fontsize"
	optSize      = "size"
	optDynamic   = "dynamic"
)

var hardcopyKeys = []string{
	optMode, optEPS, optEnhanced, optColor, optSolid, optDuplexing,
	optFontName, optFontSize, optSize, optDynamic,
}

// terminalOptions lists the options each hardcopy terminal accepts, in
// the order their clauses are emitted.
var terminalOptions = map[string][]string{
	"postscript": {optMode, optEPS, optEnhanced, optColor, optSolid, optDuplexing, optFontName, optFontSize},
	"svg":        {optSize, optDynamic, optEnhanced, optFontName, optFontSize},
	"png":        {optSize, optEnhanced, optFontName, optFontSize, optColor},
	"pngcairo":   {optSize, optEnhanced, optFontName, optFontSize, optColor},
	"pdfcairo":   {optSize, optEnhanced, optFontName, optFontSize, optColor},
}

// HardcopyOptions configures Hardcopy. Zero values leave the engine
// default, except Enhanced for postscript which follows the config.
type HardcopyOptions struct {
	Terminal  string // postscript, svg, png, pngcairo or pdfcairo
	Mode      string // postscript: landscape, portrait, eps or default
	EPS       bool   // postscript: encapsulated output
	Enhanced  *bool  // enhanced text processing
	Color     *bool  // color or monochrome
	Solid     *bool  // postscript: solid or dashed lines
	Duplexing string // postscript: defaultplex, simplex or duplex
	FontName  string
	FontSize  int
	Size      string // svg and bitmap terminals, e.g. "800,600"
	Dynamic   *bool  // svg: dynamic or fixed size
}

// Hardcopy redraws the displayed items into filename with a file
// terminal, then restores the interactive terminal. An empty filename
// sends the output to the configured default printer.
func (s *Session) Hardcopy(filename string, opts HardcopyOptions) error {
	term, err := s.terminalLine(opts)
	if err != nil {
		return err
	}
	if filename == "" {
		filename = s.cfg.DefaultPrinter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.active.len() == 0 {
		return ErrNoItems
	}

	if err := s.sendLocked(term, "set output "+plotitem.Quote(filename)); err != nil {
		return err
	}
	plotErr := s.refreshLocked()
	restoreErr := s.sendLocked("set terminal "+s.cfg.DefaultTerminal, "set output")
	if plotErr != nil {
		return plotErr
	}
	return restoreErr
}

// terminalLine validates opts against the terminal's option table and
// builds the "set terminal" line.
func (s *Session) terminalLine(opts HardcopyOptions) (string, error) {
	term := opts.Terminal
	if term == "" {
		term = DefaultHardcopyTerminal
	}
	legal, ok := terminalOptions[term]
	if !ok {
		return "", &TerminalError{Terminal: term, Reason: "unsupported hardcopy terminal"}
	}
	if term == DefaultHardcopyTerminal && opts.Enhanced == nil {
		enhanced := s.cfg.PreferEnhancedPostscript
		opts.Enhanced = &enhanced
	}

	clauses, err := hardcopyClauses(term, opts)
	if err != nil {
		return "", err
	}
	for _, key := range hardcopyKeys {
		if _, set := clauses[key]; set && !slices.Contains(legal, key) {
			return "", &TerminalError{Terminal: term, Key: key, Reason: "option not accepted"}
		}
	}

	line := "set terminal " + term
	font := false
	for _, key := range legal {
		clause, ok := clauses[key]
		if !ok {
			continue
		}
		if key == optFontName || key == optFontSize {
			if font {
				continue
			}
			font = true
			clause = fontClause(opts)
		}
		line += " " + clause
	}
	return line, nil
}

// hardcopyClauses renders every option that is set, keyed by option name.
func hardcopyClauses(term string, opts HardcopyOptions) (map[string]string, error) {
	clauses := make(map[string]string)

	mode := opts.Mode
	if opts.EPS {
		if mode != "" && mode != "eps" {
			return nil, &TerminalError{Terminal: term, Key: optMode, Value: mode, Reason: "conflicts with eps"}
		}
		clauses[optEPS] = "eps"
		mode = ""
	}
	if mode != "" {
		switch mode {
		case "landscape", "portrait", "eps", "default":
			clauses[optMode] = mode
		default:
			return nil, &TerminalError{Terminal: term, Key: optMode, Value: mode, Reason: "must be landscape, portrait, eps or default"}
		}
	}
	if opts.Duplexing != "" {
		switch opts.Duplexing {
		case "defaultplex", "simplex", "duplex":
			clauses[optDuplexing] = opts.Duplexing
		default:
			return nil, &TerminalError{Terminal: term, Key: optDuplexing, Value: opts.Duplexing, Reason: "must be defaultplex, simplex or duplex"}
		}
	}
	if opts.FontSize < 0 {
		return nil, &TerminalError{Terminal: term, Key: optFontSize, Value: opts.FontSize, Reason: "must not be negative"}
	}

	toggle(clauses, optEnhanced, opts.Enhanced, "enhanced", "noenhanced")
	toggle(clauses, optColor, opts.Color, "color", "monochrome")
	toggle(clauses, optSolid, opts.Solid, "solid", "dashed")
	toggle(clauses, optDynamic, opts.Dynamic, "dynamic", "fixed")
	if opts.FontName != "" {
		clauses[optFontName] = ""
	}
	if opts.FontSize > 0 {
		clauses[optFontSize] = ""
	}
	if opts.Size != "" {
		clauses[optSize] = "size " + opts.Size
	}
	return clauses, nil
}

func toggle(clauses map[string]string, key string, v *bool, on, off string) {
	if v == nil {
		return
	}
	if *v {
		clauses[key] = on
	} else {
		clauses[key] = off
	}
}

// fontClause renders font "name,size"; either part may be empty.
func fontClause(opts HardcopyOptions) string {
	spec := opts.FontName
	if opts.FontSize > 0 {
		spec += "," + strconv.Itoa(opts.FontSize)
	}
	return "font " + plotitem.Quote(spec)
}
