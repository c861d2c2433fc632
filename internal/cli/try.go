package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rodneyxr/brics-automaton/pkg/fst"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) tryCommand() *cobra.Command {
	sep := "/"

	cmd := &cobra.Command{
		Use:   "try",
		Short: "Type strings interactively and watch each transducer rewrite them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newTryModel(sep, defaultLimit)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&sep, "sep", sep, "separator character")

	return cmd
}

// =============================================================================
// TryModel - Interactive rewriting
// =============================================================================

// TryModel is the bubbletea model behind the try command: a transducer list
// and an input line. The outputs of the selected transducer are recomputed on
// every keystroke.
type TryModel struct {
	Names       []string
	Transducers []*fst.Transducer
	Cursor      int
	Input       []rune
	Limit       int
}

func newTryModel(sep string, limit int) (TryModel, error) {
	m := TryModel{Names: transducerNames(), Limit: limit}
	for _, name := range m.Names {
		t, err := buildTransducer(name, sep)
		if err != nil {
			return TryModel{}, err
		}
		m.Transducers = append(m.Transducers, t)
	}
	return m, nil
}

func (m TryModel) Init() tea.Cmd {
	return nil
}

func (m TryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case tea.KeyDown:
		if m.Cursor < len(m.Transducers)-1 {
			m.Cursor++
		}
	case tea.KeyBackspace:
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
	case tea.KeySpace:
		m.Input = append(m.Input, ' ')
	case tea.KeyRunes:
		m.Input = append(m.Input, key.Runes...)
	}
	return m, nil
}

// Outputs runs the current input through the selected transducer.
func (m TryModel) Outputs() ([]string, bool) {
	return m.Transducers[m.Cursor].Outputs(string(m.Input), m.Limit)
}

func (m TryModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Try a transducer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ transducer  type to edit  esc quit"))
	b.WriteString("\n\n")

	for i, name := range m.Names {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + name))
		} else {
			b.WriteString(listNormalStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleValue.Render("> " + string(m.Input) + "█"))
	b.WriteString("\n\n")

	outs, ok := m.Outputs()
	switch {
	case !ok:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("more than %d outputs", m.Limit)))
	case len(outs) == 0:
		b.WriteString(listDimStyle.Render("rejected"))
	default:
		rows := make([][]string, len(outs))
		for i, out := range outs {
			rows[i] = []string{fmt.Sprint(i + 1), fmt.Sprintf("%q", out)}
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("#", "Output").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle()
			})
		b.WriteString(t.Render())
	}
	b.WriteString("\n")

	return b.String()
}
