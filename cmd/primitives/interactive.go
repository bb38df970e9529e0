package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ffi-primitives"
	"github.com/wippyai/ffi-primitives/internal/config"
)

type palette struct {
	header lipgloss.Style
	name   lipgloss.Style
	kind   lipgloss.Style
	cursor lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
	hint   lipgloss.Style
}

var ui = palette{
	header: lipgloss.NewStyle().Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#F5C2E7")),
	name:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")).Italic(true),
	cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C2E7")),
	ok:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	hint:   lipgloss.NewStyle().Faint(true),
}

type screen int

const (
	screenPick screen = iota
	screenArgs
	screenOutcome
)

// session is the bubbletea model: pick an operation, fill in its
// arguments, see what the facade returned.
type session struct {
	ctx    context.Context
	facade facade
	ops    []primitives.Signature
	fields []textinput.Model
	screen screen
	cursor int
	field  int
	output string
	err    error
}

type outcomeMsg struct {
	output string
	err    error
}

// callableSignatures are the operations a user can call by value. Release
// functions take a pointer only the façade itself holds.
func callableSignatures() []primitives.Signature {
	var out []primitives.Signature
	for _, sig := range primitives.Catalog() {
		if !sig.Releases {
			out = append(out, sig)
		}
	}
	return out
}

func placeholder(t wit.Type) string {
	if primitives.IsList(t) {
		return "1, 2, 3"
	}
	return primitives.TypeName(t)
}

func convertArg(value string, t wit.Type) (any, error) {
	value = strings.TrimSpace(value)
	switch t.(type) {
	case wit.String:
		return value, nil
	case wit.S32:
		v, err := strconv.ParseInt(value, 10, 32)
		return int32(v), err
	case wit.F64:
		return strconv.ParseFloat(value, 64)
	case wit.Bool:
		return value == "true" || value == "1", nil
	}
	if primitives.IsList(t) {
		var xs []int32
		for _, field := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
			v, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return nil, err
			}
			xs = append(xs, int32(v))
		}
		return xs, nil
	}
	return nil, fmt.Errorf("unsupported type %s", primitives.TypeName(t))
}

// invoke calls the named operation with converted arguments and renders
// the result.
func invoke(ctx context.Context, f facade, name string, args []any) (string, error) {
	switch name {
	case "add_numbers":
		v, err := f.AddNumbers(ctx, args[0].(int32), args[1].(int32))
		return fmt.Sprint(v), err
	case "multiply_doubles":
		v, err := f.MultiplyDoubles(ctx, args[0].(float64), args[1].(float64))
		return fmt.Sprint(v), err
	case "factorial":
		v, err := f.Factorial(ctx, args[0].(int32))
		return fmt.Sprint(v), err
	case "is_prime":
		v, err := f.IsPrime(ctx, args[0].(int32))
		return fmt.Sprint(v), err
	case "fibonacci":
		v, err := f.Fibonacci(ctx, args[0].(int32))
		return fmt.Sprint(v), err
	case "string_length":
		v, err := f.StringLength(ctx, args[0].(string))
		return fmt.Sprint(v), err
	case "reverse_string":
		v, ok, err := f.ReverseString(ctx, args[0].(string))
		if !ok && err == nil {
			return "NULL", nil
		}
		return strconv.Quote(v), err
	case "sum_array":
		v, err := f.SumArray(ctx, args[0].([]int32))
		return fmt.Sprint(v), err
	}
	return "", fmt.Errorf("unknown operation %q", name)
}

func newSession(ctx context.Context, f facade) *session {
	return &session{ctx: ctx, facade: f, ops: callableSignatures()}
}

func (s *session) Init() tea.Cmd { return nil }

func (s *session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		s.output, s.err = msg.output, msg.err
		s.screen = screenOutcome
		return s, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return s, tea.Quit
		}
		switch s.screen {
		case screenPick:
			return s.updatePick(msg)
		case screenArgs:
			return s.updateArgs(msg)
		case screenOutcome:
			return s.updateOutcome(msg)
		}
	}
	return s, nil
}

func (s *session) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return s, tea.Quit
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(s.ops)-1)
	case "enter":
		s.openFields()
		if len(s.fields) == 0 {
			return s, s.call
		}
		s.screen = screenArgs
	}
	return s, nil
}

func (s *session) updateArgs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.fields = nil
		s.screen = screenPick
		return s, nil
	case "enter":
		return s, s.call
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = len(s.fields) - 1
		}
		s.fields[s.field].Blur()
		s.field = (s.field + step) % len(s.fields)
		return s, s.fields[s.field].Focus()
	}
	var cmd tea.Cmd
	s.fields[s.field], cmd = s.fields[s.field].Update(msg)
	return s, cmd
}

func (s *session) updateOutcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return s, tea.Quit
	case "enter", "esc":
		s.output, s.err = "", nil
		s.screen = screenPick
	}
	return s, nil
}

func (s *session) openFields() {
	op := s.ops[s.cursor]
	s.fields = make([]textinput.Model, 0, len(op.Params))
	for i, p := range op.Params {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-4s ", p.Name)
		in.Placeholder = placeholder(p.Type)
		in.Width = 32
		if i == 0 {
			in.Focus()
		}
		s.fields = append(s.fields, in)
	}
	s.field = 0
}

// call runs off the update loop; bubbletea delivers its outcomeMsg.
func (s *session) call() tea.Msg {
	op := s.ops[s.cursor]
	args := make([]any, len(s.fields))
	for i, in := range s.fields {
		v, err := convertArg(in.Value(), op.Params[i].Type)
		if err != nil {
			return outcomeMsg{err: fmt.Errorf("%s: %w", op.Params[i].Name, err)}
		}
		args[i] = v
	}
	out, err := invoke(s.ctx, s.facade, op.Name, args)
	return outcomeMsg{output: out, err: err}
}

func (s *session) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s via %s\n\n", ui.header.Render("primitives"), s.facade.Name())

	op := s.ops[s.cursor]
	switch s.screen {
	case screenPick:
		for i, sig := range s.ops {
			marker := "  "
			if i == s.cursor {
				marker = ui.cursor.Render("▸ ")
			}
			b.WriteString(marker + signatureLine(sig) + "\n")
		}
		fmt.Fprintf(&b, "\n%s\n%s", ui.hint.Render(op.Doc), ui.hint.Render("j/k move, enter choose, q quit"))

	case screenArgs:
		fmt.Fprintf(&b, "%s\n\n", signatureLine(op))
		for i, in := range s.fields {
			fmt.Fprintf(&b, "%s  %s\n", in.View(), ui.kind.Render(primitives.TypeName(op.Params[i].Type)))
		}
		b.WriteString("\n" + ui.hint.Render("tab switch field, enter run, esc back"))

	case screenOutcome:
		fmt.Fprintf(&b, "%s\n\n", signatureLine(op))
		if s.err != nil {
			b.WriteString(ui.fail.Render("failed: " + s.err.Error()))
		} else {
			b.WriteString("= " + ui.ok.Render(s.output))
		}
		b.WriteString("\n\n" + ui.hint.Render("enter back, q quit"))
	}
	return b.String()
}

// signatureLine renders sig in WIT notation with colour.
func signatureLine(sig primitives.Signature) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = p.Name + ": " + ui.kind.Render(primitives.TypeName(p.Type))
	}
	line := ui.name.Render(sig.Name) + "(" + strings.Join(params, ", ") + ")"
	if sig.Result != nil {
		line += " -> " + ui.kind.Render(primitives.TypeName(sig.Result))
	}
	return line
}

// runInteractive opens the named facade and drives it from a terminal UI
// until the user quits.
func runInteractive(ctx context.Context, facadeName string, cfg config.Config) error {
	f, err := openFacade(ctx, facadeName, cfg)
	if err != nil {
		return err
	}
	defer f.Close(ctx)

	_, err = tea.NewProgram(newSession(ctx, f), tea.WithAltScreen()).Run()
	return err
}
