package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/cli/formatter"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse cards and shift projects interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("board needs an interactive terminal")
			}
			p := tea.NewProgram(newBoardModel(cmd.Context(), app.Store),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}

type boardKeyMap struct {
	PrevCard key.Binding
	NextCard key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Earlier  key.Binding
	Later    key.Binding
	Quit     key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevCard, k.NextCard, k.Select, k.Earlier, k.Later, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevCard, k.NextCard, k.Up, k.Down},
		{k.Select, k.Earlier, k.Later, k.Quit},
	}
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		PrevCard: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev card")),
		NextCard: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Earlier:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "one cell earlier")),
		Later:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "one cell later")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// projectShiftedMsg reports the outcome of a one-cell move.
type projectShiftedMsg struct {
	project domain.Project
	err     error
}

// boardModel shows the projects of one card as bars over its cells.
type boardModel struct {
	ctx    context.Context
	store  *store.Store
	keys   boardKeyMap
	help   help.Model
	card   int
	cursor int
	status string
	err    error
}

func newBoardModel(ctx context.Context, s *store.Store) *boardModel {
	m := &boardModel{
		ctx:   ctx,
		store: s,
		keys:  defaultBoardKeys(),
		help:  help.New(),
		card:  s.SelectedCardIndex(),
	}
	m.clampCard()
	if i := indexOfProject(s.ProjectsForCard(m.card), s.SelectedProjectID()); i >= 0 {
		m.cursor = i
	}
	return m
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case projectShiftedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("%s moved to %s → %s", msg.project.Name,
			domain.FormatDate(msg.project.StartDate), domain.FormatDate(msg.project.EndDate))
		m.follow(msg.project.ID)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	projects := m.store.ProjectsForCard(m.card)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevCard):
		m.moveCard(-1)
	case key.Matches(msg, m.keys.NextCard):
		m.moveCard(1)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(projects)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(projects) {
			p := projects[m.cursor]
			id := p.ID
			if m.store.SelectedProjectID() == id {
				id = ""
			}
			m.err = m.store.SelectProject(id)
			m.status = ""
		}
	case key.Matches(msg, m.keys.Earlier):
		if m.cursor < len(projects) {
			return m, m.shift(projects[m.cursor], -1)
		}
	case key.Matches(msg, m.keys.Later):
		if m.cursor < len(projects) {
			return m, m.shift(projects[m.cursor], 1)
		}
	}
	return m, nil
}

func (m *boardModel) moveCard(delta int) {
	next := m.card + delta
	if next < 0 || next >= len(m.store.Cards()) {
		return
	}
	m.card = next
	m.cursor = 0
	m.status = ""
	m.err = m.store.SelectCard(next)
}

func (m *boardModel) clampCard() {
	n := len(m.store.Cards())
	if m.card >= n {
		m.card = n - 1
	}
	if m.card < 0 {
		m.card = 0
	}
}

// follow keeps the cursor on the project with id, switching to the first
// card that shows it when it left the current one.
func (m *boardModel) follow(id string) {
	if i := indexOfProject(m.store.ProjectsForCard(m.card), id); i >= 0 {
		m.cursor = i
		return
	}
	for card := range m.store.Cards() {
		if i := indexOfProject(m.store.ProjectsForCard(card), id); i >= 0 {
			m.card, m.cursor = card, i
			m.err = m.store.SelectCard(card)
			return
		}
	}
}

func indexOfProject(projects []domain.Project, id string) int {
	for i, p := range projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// shift moves p by one cell, keeping its length in cells.
func (m *boardModel) shift(p domain.Project, delta int) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		cells := s.Cells()
		span := calendar.ToSpan(p.StartDate, p.EndDate, cells)
		from, to := span.StartIndex+delta, span.EndIndex+delta
		if from < 0 || to > len(cells) {
			return projectShiftedMsg{err: fmt.Errorf("%s is already at the edge of the grid", p.Name)}
		}
		moved, err := s.MoveProject(ctx, p.ID, cells[from].Start, cells[to-1].End, p.Row)
		return projectShiftedMsg{project: moved, err: err}
	}
}

var (
	boardCursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	boardEmptyStyle  = lipgloss.NewStyle().Foreground(formatter.ColorDim)
)

func (m *boardModel) View() string {
	cards := m.store.Cards()
	if len(cards) == 0 {
		return formatter.Warning("The grid has no cells.") + "\n"
	}
	card := cards[m.card]
	projects := m.store.ProjectsForCard(m.card)
	selected := m.store.SelectedProjectID()

	widths := make([]int, len(card.Cells))
	for i, c := range card.Cells {
		widths[i] = max(lipgloss.Width(c.Label), 3) + 1
	}
	nameWidth := 12
	for _, p := range projects {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name)+4)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", formatter.Header(card.Title), formatter.Dim(fmt.Sprintf("card %d/%d", m.card+1, len(cards))))

	b.WriteString(strings.Repeat(" ", nameWidth))
	for i, c := range card.Cells {
		b.WriteString(formatter.Dim(fmt.Sprintf("%-*s", widths[i], c.Label)))
	}
	b.WriteString("\n")

	if len(projects) == 0 {
		b.WriteString(formatter.Dim("  No projects on this card.") + "\n")
	}
	for i, p := range projects {
		prefix := "  "
		if i == m.cursor {
			prefix = boardCursorStyle.Render("▸ ")
		}
		name := p.Name
		if p.ID == selected {
			name = formatter.Flag(true) + " " + name
		}
		b.WriteString(prefix + fmt.Sprintf("%-*s", nameWidth-2, name))

		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(m.store.ProjectColor(p)))
		for j, c := range card.Cells {
			if p.StartDate.Before(c.End) && p.EndDate.After(c.Start) {
				b.WriteString(bar.Render(strings.Repeat("█", widths[j]-1)) + " ")
			} else {
				b.WriteString(boardEmptyStyle.Render(strings.Repeat("·", widths[j]-1)) + " ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.Warning("%v", m.err) + "\n")
	case m.status != "":
		b.WriteString(formatter.Success("%s", m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
