package compiler_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const binaryMachine = `# ends in 1
Q = {q0, q1, qacc, qrej}
Sigma = {0,1}
Gamma = {0,1,⊔}
blank = ⊔
q0 = q0
qaccept = qacc
qreject = qrej

delta:
(q0, 0) -> (q0, 0, R)
(q0, 1) -> (q1, 1, R)
(q1, 0) -> (q0, 0, R)
(q1, 1) -> (q1, 1, R)
(q1, ⊔) -> (qacc, ⊔, R)

input = 0101
`

func TestParser_Parse(t *testing.T) {
	def, input, err := compiler.NewParser().ParseString(binaryMachine)
	require.NoError(t, err)

	assert.Equal(t, "0101", input)
	assert.Equal(t, []string{"q0", "q1", "qacc", "qrej"}, def.States())
	assert.Equal(t, []rune{'0', '1'}, def.InputAlphabet())
	assert.Equal(t, '⊔', def.Blank())
	assert.Equal(t, "q0", def.Initial())
	assert.Equal(t, "qacc", def.Accept())
	assert.Equal(t, "qrej", def.Reject())
	assert.Len(t, def.Transitions(), 5)

	act, ok := def.Lookup("q1", '⊔')
	require.True(t, ok)
	assert.Equal(t, domain.Action{Next: "qacc", Write: '⊔', Move: domain.Right}, act)

	_, ok = def.Lookup("q0", '⊔')
	assert.False(t, ok)
}

func TestParser_KeySynonyms(t *testing.T) {
	src := `STATES = {a, acc, rej}
sigma = {x}
GAMMA = {x, _}
blanco = _
estado_inicial = a
Aceptacion = acc
q_reject = rej
entrada = xx
Delta
(a, x) -> (acc, x, R)
`
	def, input, err := compiler.NewParser().ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, "xx", input)
	assert.Equal(t, "a", def.Initial())
	assert.Equal(t, "acc", def.Accept())
	assert.Equal(t, "rej", def.Reject())
	assert.Equal(t, '_', def.Blank())
}

func TestParser_LaterAssignmentWins(t *testing.T) {
	src := `Q = {a, b, acc, rej}
Sigma = {1}
Gamma = {1, _}
blank = _
q0 = a
q0 = b
qaccept = acc
qreject = rej
`
	def, input, err := compiler.NewParser().ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, "b", def.Initial())
	assert.Equal(t, "", input, "input defaults to the empty string")
}

func TestParser_TransitionModeEndsOnFirstNonTransition(t *testing.T) {
	// The input line follows the rules directly; it must be read as key = value.
	src := `Q = {q0, qa, qr}
Sigma = {1}
Gamma = {1, _}
blank = _
q0 = q0
qaccept = qa
qreject = qr
delta:
(q0, 1) -> (qa, 1, R)
input = 111
`
	_, input, err := compiler.NewParser().ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, "111", input)
}

func TestParser_Errors(t *testing.T) {
	const header = `Q = {q0, qa, qr}
Sigma = {1}
Gamma = {1, _}
blank = _
q0 = q0
qaccept = qa
qreject = qr
delta:
`
	tests := []struct {
		name     string
		src      string
		opts     []compiler.Option
		sentinel error
		line     int
	}{
		{
			name:     "Duplicate Transition",
			src:      header + "(q0, 1) -> (qa, 1, R)\n(q0, 1) -> (qr, 1, L)\n",
			sentinel: compiler.ErrDuplicateTransition,
			line:     10,
		},
		{
			name:     "Stay Not Allowed",
			src:      header + "(q0, 1) -> (qa, 1, S)\n",
			sentinel: compiler.ErrStayNotAllowed,
			line:     9,
		},
		{
			name:     "Stay Checked Before Duplicate",
			src:      header + "(q0, 1) -> (qa, 1, R)\n(q0, 1) -> (qa, 1, S)\n",
			sentinel: compiler.ErrStayNotAllowed,
			line:     10,
		},
		{
			name:     "Blank Too Long",
			src:      "blank = __\n",
			sentinel: compiler.ErrBlankLength,
			line:     1,
		},
		{
			name:     "Multi Character Symbol",
			src:      "Sigma = {0, 10}\n",
			sentinel: compiler.ErrSymbolLength,
			line:     1,
		},
		{
			name:     "Malformed Set",
			src:      "# comment\nQ = q0, q1\n",
			sentinel: compiler.ErrMalformedSet,
			line:     2,
		},
		{
			name:     "Unknown Key",
			src:      "tape = {0}\n",
			sentinel: compiler.ErrUnknownKey,
			line:     1,
		},
		{
			name:     "Unrecognized Line",
			src:      header + "(q0, 1) -> (qa, 1, R)\nthis is not valid\n",
			sentinel: compiler.ErrUnrecognizedLine,
			line:     10,
		},
		{
			name:     "Bad Transition Outside Delta",
			src:      "(q0, 1) -> (qa, 1, R)\n",
			sentinel: compiler.ErrUnrecognizedLine,
			line:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, _, err := compiler.NewParser(tt.opts...).ParseString(tt.src)
			assert.Nil(t, def)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var pe *compiler.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParser_StayAllowed(t *testing.T) {
	src := `Q = {q0, qa, qr}
Sigma = {1}
Gamma = {1, _}
blank = _
q0 = q0
qaccept = qa
qreject = qr
delta:
(q0, 1) -> (qa, 1, S)
`
	def, _, err := compiler.NewParser(compiler.WithAllowStay(true)).ParseString(src)
	require.NoError(t, err)
	assert.True(t, def.AllowStay())

	// The library error names no command-line flag.
	_, _, err = compiler.NewParser().ParseString(src)
	require.ErrorIs(t, err, compiler.ErrStayNotAllowed)
	assert.NotContains(t, err.Error(), "--allow-S")
}

func TestParser_LongLines(t *testing.T) {
	header := strings.TrimSuffix(binaryMachine, "input = 0101\n")

	t.Run("Input Longer Than A Scanner Buffer", func(t *testing.T) {
		long := strings.Repeat("01", 60000) + "1"
		_, input, err := compiler.NewParser().ParseString(header + "input = " + long)
		require.NoError(t, err)
		assert.Len(t, input, 120001)
	})

	t.Run("CRLF Line Endings", func(t *testing.T) {
		src := strings.ReplaceAll(binaryMachine, "\n", "\r\n")
		def, input, err := compiler.NewParser().ParseString(src)
		require.NoError(t, err)
		assert.Equal(t, "0101", input)
		assert.Len(t, def.Transitions(), 5)
	})

	t.Run("Error Line Number After Long Line", func(t *testing.T) {
		src := header + "input = " + strings.Repeat("1", 70000) + "\nbogus line\n"
		_, _, err := compiler.NewParser().ParseString(src)

		var pe *compiler.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, strings.Count(header, "\n")+2, pe.Line)
	})
}

func TestParser_MissingFields(t *testing.T) {
	t.Run("Missing Reject State", func(t *testing.T) {
		src := `Q = {q0, qa, qr}
Sigma = {1}
Gamma = {1, _}
blank = _
q0 = q0
qaccept = qa
`
		_, _, err := compiler.NewParser().ParseString(src)
		var mf *compiler.MissingFieldsError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, []string{"qreject"}, mf.Fields)
	})

	t.Run("Empty Document Lists All In Order", func(t *testing.T) {
		_, _, err := compiler.NewParser().ParseString("# nothing\n\n")
		var mf *compiler.MissingFieldsError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, []string{"Q", "Sigma", "Gamma", "blank", "q0", "qaccept", "qreject"}, mf.Fields)
		assert.Contains(t, err.Error(), "Q, Sigma, Gamma")
	})
}

func TestParser_ValidationPassThrough(t *testing.T) {
	src := `Q = {q0, qa, qr}
Sigma = {1, _}
Gamma = {1, _}
blank = _
q0 = q0
qaccept = qa
qreject = qr
`
	_, _, err := compiler.NewParser().ParseString(src)
	var ve *machine.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, machine.CheckBlank, ve.Check)
}

func TestParser_EmptySet(t *testing.T) {
	src := `Q = {q0, qa, qr}
Sigma = {}
Gamma = {_}
blank = _
q0 = q0
qaccept = qa
qreject = qr
`
	def, _, err := compiler.NewParser().ParseString(src)
	require.NoError(t, err)
	assert.Empty(t, def.InputAlphabet())
}

func TestParser_ParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mt_ends_in_one.txt")
	require.NoError(t, os.WriteFile(path, []byte(binaryMachine), 0o644))

	def, input, err := compiler.NewParser(compiler.WithLeftBoundary(3)).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0101", input)
	assert.Equal(t, 3, def.LeftBoundary())

	_, _, err = compiler.NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
