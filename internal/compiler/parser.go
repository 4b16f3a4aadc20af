package compiler

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

var (
	keyValueRe   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+?)\s*$`)
	setRe        = regexp.MustCompile(`^\{\s*(.*?)\s*\}$`)
	transitionRe = regexp.MustCompile(`^\s*\(\s*([A-Za-z0-9_]+)\s*,\s*(.)\s*\)\s*->\s*\(\s*([A-Za-z0-9_]+)\s*,\s*(.)\s*,\s*([LRS])\s*\)\s*$`)
)

// keyAliases maps every accepted (lower-case) key to its canonical field name.
var keyAliases = map[string]string{
	"q":              domain.FieldStates,
	"states":         domain.FieldStates,
	"sigma":          domain.FieldInputAlphabet,
	"gamma":          domain.FieldTapeAlphabet,
	"blank":          domain.FieldBlank,
	"blanco":         domain.FieldBlank,
	"q0":             domain.FieldInitial,
	"inicial":        domain.FieldInitial,
	"estado_inicial": domain.FieldInitial,
	"initial":        domain.FieldInitial,
	"qaccept":        domain.FieldAccept,
	"q_accept":       domain.FieldAccept,
	"aceptacion":     domain.FieldAccept,
	"qacc":           domain.FieldAccept,
	"accept":         domain.FieldAccept,
	"qreject":        domain.FieldReject,
	"q_reject":       domain.FieldReject,
	"rechazo":        domain.FieldReject,
	"qrej":           domain.FieldReject,
	"reject":         domain.FieldReject,
	"input":          domain.FieldInput,
	"entrada":        domain.FieldInput,
	"w":              domain.FieldInput,
}

// requiredFields is the canonical order used when reporting missing fields.
var requiredFields = []string{
	domain.FieldStates,
	domain.FieldInputAlphabet,
	domain.FieldTapeAlphabet,
	domain.FieldBlank,
	domain.FieldInitial,
	domain.FieldAccept,
	domain.FieldReject,
}

// Parser converts the line-oriented machine notation into a validated machine.Definition.
type Parser struct {
	allowStay    bool
	leftBoundary int
	logger       *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithAllowStay permits the S move in transitions.
func WithAllowStay(allow bool) Option {
	return func(p *Parser) {
		p.allowStay = allow
	}
}

// WithLeftBoundary sets the index of the leftmost tape cell of the parsed machine.
func WithLeftBoundary(idx int) Option {
	return func(p *Parser) {
		p.leftBoundary = idx
	}
}

// WithLogger sets the logger used for debug tracing of the parse.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		leftBoundary: domain.DefaultLeftBoundary,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses the machine description at path.
func (p *Parser) ParseFile(path string) (*machine.Definition, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open machine description: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// ParseString parses a machine description held in memory.
func (p *Parser) ParseString(text string) (*machine.Definition, string, error) {
	return p.Parse(strings.NewReader(text))
}

// Parse reads a machine description and returns the validated definition and its input string.
// No partial definition is ever returned.
func (p *Parser) Parse(r io.Reader) (*machine.Definition, string, error) {
	st := &parseState{
		fields: make(map[string]bool),
		seen:   make(map[domain.Key]int),
	}

	// Lines have no length limit; an input line may hold a long tape.
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, "", fmt.Errorf("failed to read machine description at line %d: %w", lineNo+1, readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}
		lineNo++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if err := p.parseLine(st, lineNo, line); err != nil {
			return nil, "", err
		}
		if readErr == io.EOF {
			break
		}
	}

	var missing []string
	for _, f := range requiredFields {
		if !st.fields[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, "", &MissingFieldsError{Fields: missing}
	}

	st.cfg.AllowStay = p.allowStay
	st.cfg.LeftBoundary = p.leftBoundary
	def, err := machine.New(st.cfg)
	if err != nil {
		return nil, "", err
	}
	p.logger.Debug("machine parsed",
		"states", len(st.cfg.States),
		"transitions", len(st.cfg.Transitions),
		"input_len", utf8.RuneCountInString(st.input))
	return def, st.input, nil
}

type parseState struct {
	cfg          machine.Config
	input        string
	fields       map[string]bool
	inTransition bool
	seen         map[domain.Key]int
}

func (p *Parser) parseLine(st *parseState, lineNo int, raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if strings.HasPrefix(strings.ToLower(line), "delta") {
		p.logger.Debug("entering transition mode", "line", lineNo)
		st.inTransition = true
		return nil
	}

	if st.inTransition {
		if m := transitionRe.FindStringSubmatch(line); m != nil {
			return p.parseTransition(st, lineNo, line, m)
		}
		// The first line that is not a transition ends the block and is read as key = value.
		p.logger.Debug("leaving transition mode", "line", lineNo)
		st.inTransition = false
	}

	m := keyValueRe.FindStringSubmatch(line)
	if m == nil {
		return &ParseError{Line: lineNo, Text: line, Err: ErrUnrecognizedLine}
	}
	return p.assign(st, lineNo, line, m[1], m[2])
}

func (p *Parser) parseTransition(st *parseState, lineNo int, line string, m []string) error {
	move, err := domain.ParseMove(m[5])
	if err != nil {
		return &ParseError{Line: lineNo, Text: line, Err: err}
	}
	if move == domain.Stay && !p.allowStay {
		return &ParseError{Line: lineNo, Text: line, Err: ErrStayNotAllowed}
	}

	read, _ := utf8.DecodeRuneInString(m[2])
	write, _ := utf8.DecodeRuneInString(m[4])
	key := domain.Key{State: m[1], Read: read}
	if first, dup := st.seen[key]; dup {
		return &ParseError{
			Line: lineNo,
			Text: line,
			Err:  fmt.Errorf("%w %s (first defined on line %d)", ErrDuplicateTransition, key, first),
		}
	}
	st.seen[key] = lineNo

	st.cfg.Transitions = append(st.cfg.Transitions, domain.Transition{
		Key:    key,
		Action: domain.Action{Next: m[3], Write: write, Move: move},
		Line:   lineNo,
	})
	return nil
}

func (p *Parser) assign(st *parseState, lineNo int, line, key, value string) error {
	field, ok := keyAliases[strings.ToLower(key)]
	if !ok {
		return &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("%w %q", ErrUnknownKey, key)}
	}

	switch field {
	case domain.FieldStates:
		items, err := parseSet(value)
		if err != nil {
			return &ParseError{Line: lineNo, Text: line, Err: err}
		}
		st.cfg.States = items
	case domain.FieldInputAlphabet, domain.FieldTapeAlphabet:
		items, err := parseSet(value)
		if err != nil {
			return &ParseError{Line: lineNo, Text: line, Err: err}
		}
		symbols, err := toSymbols(items)
		if err != nil {
			return &ParseError{Line: lineNo, Text: line, Err: err}
		}
		if field == domain.FieldInputAlphabet {
			st.cfg.InputAlphabet = symbols
		} else {
			st.cfg.TapeAlphabet = symbols
		}
	case domain.FieldBlank:
		if utf8.RuneCountInString(value) != 1 {
			return &ParseError{Line: lineNo, Text: line, Err: ErrBlankLength}
		}
		st.cfg.Blank, _ = utf8.DecodeRuneInString(value)
	case domain.FieldInitial:
		st.cfg.Initial = value
	case domain.FieldAccept:
		st.cfg.Accept = value
	case domain.FieldReject:
		st.cfg.Reject = value
	case domain.FieldInput:
		st.input = value
	}

	st.fields[field] = true
	return nil
}

// parseSet splits "{a, b, c}" into trimmed, non-empty elements.
func parseSet(value string) ([]string, error) {
	m := setRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil, ErrMalformedSet
	}
	var items []string
	for _, part := range strings.Split(m[1], ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items, nil
}

func toSymbols(items []string) ([]rune, error) {
	out := make([]rune, 0, len(items))
	for _, it := range items {
		if utf8.RuneCountInString(it) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrSymbolLength, it)
		}
		r, _ := utf8.DecodeRuneInString(it)
		out = append(out, r)
	}
	return out, nil
}
