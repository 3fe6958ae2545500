package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaquinabian/gnuplot-go/internal/config"
)

func ptr[T any](v T) *T { return &v }

func TestHardcopySequence(t *testing.T) {
	s, rec := newTestSession(t)
	require.NoError(t, s.Plot(mustFunc(t, "sin(x)")))
	before := len(rec.writes)

	require.NoError(t, s.Hardcopy("out.ps", HardcopyOptions{}))

	got := strings.Join(rec.writes[before:], "")
	want := strings.Join([]string{
		"set terminal postscript enhanced",
		`set output "out.ps"`,
		"plot sin(x)",
		"set terminal x11",
		"set output",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestHardcopyDefaultPrinter(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.Config) { c.PreferEnhancedPostscript = false })
	require.NoError(t, s.Plot(mustFunc(t, "x")))

	require.NoError(t, s.Hardcopy("", HardcopyOptions{}))
	assert.Contains(t, rec.all(), "set terminal postscript noenhanced\nset output \"| lpr\"\n")
}

func TestHardcopyWithoutItems(t *testing.T) {
	s, _ := newTestSession(t)
	assert.ErrorIs(t, s.Hardcopy("out.ps", HardcopyOptions{}), ErrNoItems)
}

func TestTerminalLine(t *testing.T) {
	s, _ := newTestSession(t)

	tests := []struct {
		name string
		opts HardcopyOptions
		want string
	}{
		{
			name: "postscript full",
			opts: HardcopyOptions{
				Mode:      "landscape",
				Enhanced:  ptr(false),
				Color:     ptr(true),
				Solid:     ptr(false),
				Duplexing: "duplex",
				FontName:  "Times",
				FontSize:  12,
			},
			want: `set terminal postscript landscape noenhanced color dashed duplex font "Times,12"`,
		},
		{
			name: "eps",
			opts: HardcopyOptions{EPS: true, Color: ptr(false)},
			want: "set terminal postscript eps enhanced monochrome",
		},
		{
			name: "svg",
			opts: HardcopyOptions{Terminal: "svg", Size: "800,600", Dynamic: ptr(true), FontSize: 10},
			want: `set terminal svg size 800,600 dynamic font ",10"`,
		},
		{
			name: "pngcairo",
			opts: HardcopyOptions{Terminal: "pngcairo", Enhanced: ptr(true), FontName: "Sans"},
			want: `set terminal pngcairo enhanced font "Sans"`,
		},
		{
			name: "pdfcairo bare",
			opts: HardcopyOptions{Terminal: "pdfcairo"},
			want: "set terminal pdfcairo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.terminalLine(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminalLineRejects(t *testing.T) {
	s, _ := newTestSession(t)

	tests := []struct {
		name string
		opts HardcopyOptions
		key  string
	}{
		{"unknown terminal", HardcopyOptions{Terminal: "dumb"}, ""},
		{"bad mode", HardcopyOptions{Mode: "sideways"}, optMode},
		{"eps conflict", HardcopyOptions{Mode: "portrait", EPS: true}, optMode},
		{"bad duplexing", HardcopyOptions{Duplexing: "triplex"}, optDuplexing},
		{"negative font size", HardcopyOptions{FontSize: -1}, optFontSize},
		{"svg solid", HardcopyOptions{Terminal: "svg", Solid: ptr(true)}, optSolid},
		{"png dynamic", HardcopyOptions{Terminal: "png", Dynamic: ptr(true)}, optDynamic},
		{"postscript size", HardcopyOptions{Size: "5,3"}, optSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.terminalLine(tt.opts)
			require.ErrorIs(t, err, ErrOption)

			var terr *TerminalError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.key, terr.Key)
		})
	}
}

func TestHardcopyRejectsBeforeWriting(t *testing.T) {
	s, rec := newTestSession(t)
	require.NoError(t, s.Plot(mustFunc(t, "x")))
	before := len(rec.writes)

	err := s.Hardcopy("out.svg", HardcopyOptions{Terminal: "svg", Duplexing: "simplex"})
	assert.ErrorIs(t, err, ErrOption)
	assert.Len(t, rec.writes, before)
}
