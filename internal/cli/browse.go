package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/treeamps/treeamps/pkg/basisio"
	"github.com/treeamps/treeamps/pkg/pipeline"
	"github.com/treeamps/treeamps/pkg/tensor"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive basis inspection.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse [basis.json]",
		Short: "Browse a tensor-structure basis interactively",
		Long: `Browse a tensor-structure basis in an interactive list.

With a basis.json argument (produced by 'gen -f json'), the stored basis
is loaded. Without one, a basis is enumerated from the flags first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return c.browseFile(args[0])
			}
			return c.browseGenerated(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().IntVarP(&opts.Legs, "legs", "n", pipeline.DefaultLegs, "number of external legs")
	cmd.Flags().IntVarP(&opts.Degree, "degree", "d", 0, "number of factors per structure (0 = infer)")
	cmd.Flags().IntVarP(&opts.EE, "ee", "e", 0, "number of e·e contractions (0 = infer)")
	cmd.Flags().StringVar(&opts.Transversality, "transversality", "", "transversality: forbid-self-dot (default), none")
	cmd.Flags().StringVar(&opts.PolPattern, "pol-pattern", "", "polarization pattern: one-per-leg (default), unrestricted")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// browseFile loads a stored basis and opens the browser.
func (c *CLI) browseFile(path string) error {
	b, err := basisio.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("load basis %s: %w", path, err)
	}
	structures, err := b.Decode()
	if err != nil {
		return fmt.Errorf("decode basis %s: %w", path, err)
	}
	return runBrowser(structures, b.Legs)
}

// browseGenerated enumerates a basis from the flags and opens the browser.
func (c *CLI) browseGenerated(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	structures, err := runner.Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	prog.done(fmt.Sprintf("Enumerated %d structures", len(structures)))
	return runBrowser(structures, opts.Legs)
}

// runBrowser starts the bubbletea program.
func runBrowser(structures []tensor.TensorStructure, legs int) error {
	if len(structures) == 0 {
		printInfo("Basis is empty")
		return nil
	}
	model := newBasisListModel(structures, legs)
	_, err := tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// BasisListModel - Interactive structure list
// =============================================================================

// BasisListModel is the bubbletea model for browsing structures.
type BasisListModel struct {
	Structures []tensor.TensorStructure
	Legs       int
	Cursor     int
	Height     int
	Offset     int
}

// newBasisListModel creates a new basis list model.
func newBasisListModel(structures []tensor.TensorStructure, legs int) BasisListModel {
	return BasisListModel{
		Structures: structures,
		Legs:       legs,
		Height:     15,
	}
}

func (m BasisListModel) Init() tea.Cmd {
	return nil
}

func (m BasisListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Structures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Structures) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BasisListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Tensor structures (n=%d)", m.Legs)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Structures) {
		end = len(m.Structures)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%3d) %s", cursor, i+1, m.Structures[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.factorTable())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Structures))))

	return b.String()
}

// factorTable renders the selected structure's factors as a table.
func (m BasisListModel) factorTable() string {
	s := m.Structures[m.Cursor]

	rows := make([][]string, len(s.Factors))
	for i, f := range s.Factors {
		rows[i] = []string{f.Kind.String(), fmt.Sprintf("%d", f.A), fmt.Sprintf("%d", f.B), f.String()}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "A", "B", "Factor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return listNormalStyle
		})

	return t.Render()
}
