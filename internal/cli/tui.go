package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/repoship/repoship/pkg/nexus"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RepositoryListModel - Interactive repository selection
// =============================================================================

// RepositoryListModel is the bubbletea model for picking a target repository
// when none was named on the command line.
type RepositoryListModel struct {
	Repos    []nexus.Repository
	Cursor   int
	Selected *nexus.Repository
	Height   int
	Offset   int
}

// NewRepositoryListModel creates a new repository list model.
func NewRepositoryListModel(repos []nexus.Repository) RepositoryListModel {
	return RepositoryListModel{
		Repos:  repos,
		Height: 15,
	}
}

func (m RepositoryListModel) Init() tea.Cmd {
	return nil
}

func (m RepositoryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Repos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			repo := m.Repos[m.Cursor]
			if !selectable(repo) {
				return m, nil
			}
			m.Selected = &repo
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RepositoryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Target Repository"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Repos) {
		end = len(m.Repos)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Repos[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, r.Name, valueOrDash(r.Format), valueOrDash(r.Type), r.Policy().String()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Format", "Type", "Policy").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Repos) {
				return lipgloss.NewStyle()
			}
			r := m.Repos[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if !selectable(r) {
				return base.Foreground(colorDim)
			}
			if isCurrent {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Repos))))

	return b.String()
}

// selectable reports whether a repository is a sensible upload target.
// Proxy and group repositories never accept uploads, so they are shown
// dimmed and cannot be picked.
func selectable(r nexus.Repository) bool {
	return r.Type != "proxy" && r.Type != "group"
}

// selectRepository fetches the repository list and runs the interactive
// picker. Returns "" when the user quit without selecting.
func (c *CLI) selectRepository(ctx context.Context, client *nexus.Client) (string, error) {
	spinner := newSpinnerWithContext(ctx, "Fetching repositories...")
	spinner.Start()
	repos, err := client.ListRepositories(ctx)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return "", fmt.Errorf("list repositories: %w", err)
	}
	spinner.Stop()

	if len(repos) == 0 {
		return "", fmt.Errorf("no repositories visible on the server")
	}

	program := tea.NewProgram(NewRepositoryListModel(repos), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("repository selection: %w", err)
	}

	model, ok := final.(RepositoryListModel)
	if !ok || model.Selected == nil {
		return "", nil
	}
	return model.Selected.Name, nil
}

// renderRepositoryTable renders a static repository table for list output.
func renderRepositoryTable(repos []nexus.Repository) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		rows = append(rows, []string{r.Name, valueOrDash(r.Format), valueOrDash(r.Type), r.Policy().String()})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Repository", "Format", "Type", "Policy").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
