package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// LevelSelection holds the user's choice from the level menu.
type LevelSelection struct {
	LevelID string // Empty = start from the first level
}

// LevelMenuModel is the level picker.
type LevelMenuModel struct {
	levels         []levels.Level
	solved         map[string]time.Time
	allowBeginning bool // Offer "Start from Beginning" as the first entry
	cursor         int
	scrollOffset   int
	width          int
	height         int
	keyMapper      *KeyMapper
	theme          Theme
	selection      LevelSelection
	choosing       bool
	quitting       bool
	back           bool
}

// NewLevelMenuModel creates a new level selection model.
// solved may be nil when no progress is known.
func NewLevelMenuModel(lvls []levels.Level, solved map[string]time.Time, allowBeginning bool, width, height int) LevelMenuModel {
	return LevelMenuModel{
		levels:         lvls,
		solved:         solved,
		allowBeginning: allowBeginning,
		width:          width,
		height:         height,
		keyMapper:      NewKeyMapper(),
		theme:          GetTheme(),
		choosing:       true,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

// entryCount is the number of selectable rows.
func (m LevelMenuModel) entryCount() int {
	if m.allowBeginning {
		return len(m.levels) + 1
	}
	return len(m.levels)
}

// levelAt maps a cursor position to a level index, or -1 for "Start from Beginning".
func (m LevelMenuModel) levelAt(cursor int) int {
	if m.allowBeginning {
		return cursor - 1
	}
	return cursor
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < m.entryCount()-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if m.entryCount() == 0 {
			return m, nil
		}
		m.choosing = false
		if i := m.levelAt(m.cursor); i >= 0 {
			m.selection = LevelSelection{LevelID: m.levels[i].ID}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems is how many entries fit between header and footer.
func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S O K O B A N"), m.width))
	b.WriteString("\n\n")

	subtitle := "Select a level:"
	if len(m.solved) > 0 {
		subtitle = fmt.Sprintf("Select a level (%d/%d solved):", m.solvedCount(), len(m.levels))
	}
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	if m.entryCount() == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), m.entryCount())
	for cursor := m.scrollOffset; cursor < end; cursor++ {
		b.WriteString(centerText(m.renderEntry(cursor), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < m.entryCount() {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// renderEntry renders one row of the list.
func (m LevelMenuModel) renderEntry(cursor int) string {
	prefix := "  "
	style := m.theme.MenuItemNormal
	if cursor == m.cursor {
		prefix = "> "
		style = m.theme.MenuItemActive
	}

	i := m.levelAt(cursor)
	if i < 0 {
		return style.Render(prefix + "Start from Beginning")
	}

	lvl := m.levels[i]
	line := style.Render(fmt.Sprintf("%s%2d. %-24s", prefix, i+1, lvl.Title()))
	if _, ok := m.solved[lvl.ID]; ok {
		line += m.theme.MenuSolved.Render(" ✓")
	} else {
		line += "  "
	}
	return line
}

// solvedCount counts listed levels that were solved.
func (m LevelMenuModel) solvedCount() int {
	n := 0
	for _, lvl := range m.levels {
		if _, ok := m.solved[lvl.ID]; ok {
			n++
		}
	}
	return n
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selection and returns the selection.
// A nil selection means the user backed out or quit.
func RunLevelSelector(lvls []levels.Level, solved map[string]time.Time, allowBeginning bool, cfg core.RuntimeConfig) (*LevelSelection, core.RuntimeConfig, error) {
	model := NewLevelMenuModel(lvls, solved, allowBeginning, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW = m.width
	cfg.ScreenH = m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
