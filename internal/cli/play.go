package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treetrace/internal/config"
	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/errors"
	"github.com/matzehuels/treetrace/pkg/layout"
	"github.com/matzehuels/treetrace/pkg/playback"
	"github.com/matzehuels/treetrace/pkg/treeio"
)

// newPlayCmd creates the play command: an interactive TUI that steps through
// one operation's trace on a tree loaded from a file.
func newPlayCmd(cfg *config.Config) *cobra.Command {
	var (
		insertVal   string
		searchVal   string
		traverseStr string
		intervalMS  int
	)

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Step through an operation's trace interactively",
		Long: `Play loads a tree file, runs one operation on it, and opens a TUI that
steps through the operation's trace. Use arrow keys to step manually or
space to toggle autoplay. Insert traces are played against a copy; the
file is not modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := treeio.ReadTreeFileOrEmpty(args[0])
			if err != nil {
				return err
			}

			var (
				title string
				steps []bst.Step
			)
			switch {
			case insertVal != "":
				v, err := errors.ParseValue(insertVal)
				if err != nil {
					return err
				}
				steps = tree.Insert(v)
				title = fmt.Sprintf("insert %d", v)
			case searchVal != "":
				v, err := errors.ParseValue(searchVal)
				if err != nil {
					return err
				}
				steps = tree.Search(v)
				title = fmt.Sprintf("search %d", v)
			case traverseStr != "":
				order, ok := bst.ParseOrder(traverseStr)
				if !ok {
					return errors.New(errors.ErrCodeInvalidOrder,
						"invalid order: %q (must be one of: inorder, preorder, postorder)", traverseStr)
				}
				steps = tree.Traverse(order)
				title = fmt.Sprintf("%s traversal", order)
			default:
				return errors.New(errors.ErrCodeInvalidInput,
					"one of --insert, --search, or --traverse is required")
			}

			interval := time.Duration(intervalMS) * time.Millisecond
			model := newPlayModel(title, tree, steps, interval)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&insertVal, "insert", "", "value to insert")
	cmd.Flags().StringVar(&searchVal, "search", "", "value to search for")
	cmd.Flags().StringVar(&traverseStr, "traverse", "", "traversal order: inorder, preorder, postorder")
	cmd.Flags().IntVar(&intervalMS, "interval", 800, "autoplay interval in milliseconds")
	cmd.MarkFlagsMutuallyExclusive("insert", "search", "traverse")

	return cmd
}

// =============================================================================
// Playback Model
// =============================================================================

// Highlight styles keyed by playback.HighlightClass.
var highlightStyles = map[string]lipgloss.Style{
	"visited":  lipgloss.NewStyle().Foreground(colorGray).Bold(true),
	"compared": lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	"moved":    lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
	"inserted": lipgloss.NewStyle().Foreground(colorGreen).Bold(true).Underline(true),
	"found":    lipgloss.NewStyle().Foreground(colorGreen).Bold(true).Underline(true),
	"missing":  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

// tickMsg drives autoplay.
type tickMsg time.Time

// playModel is the bubbletea model for trace playback.
type playModel struct {
	title    string
	tree     *bst.Tree
	player   *playback.Player
	interval time.Duration
	playing  bool
}

func newPlayModel(title string, tree *bst.Tree, steps []bst.Step, interval time.Duration) playModel {
	return playModel{
		title:    title,
		tree:     tree,
		player:   playback.New(steps),
		interval: interval,
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			m.playing = false
			m.player.Next()
		case "left", "h", "p":
			m.playing = false
			m.player.Prev()
		case "r":
			m.playing = false
			m.player.Reset()
		case "end":
			m.playing = false
			m.player.Seek(m.player.Len())
		case " ":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if _, ok := m.player.Next(); !ok {
			m.playing = false
			return m, nil
		}
		if m.player.Done() {
			m.playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")

	var highlight *int
	class := ""
	desc := StyleDim.Render("press → to start")
	if step, ok := m.player.Current(); ok {
		class = playback.HighlightClass(step.Action)
		if step.HasValue {
			v := step.Value
			highlight = &v
		}
		style, hasStyle := highlightStyles[class]
		if !hasStyle {
			style = StyleValue
		}
		desc = style.Render(step.Action.String()) + " " + StyleValue.Render(step.Description)
	}

	b.WriteString(renderTree(m.tree, highlight, class))
	b.WriteString("\n")
	b.WriteString(desc)
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d/%d]", m.player.Pos(), m.player.Len())))
	if m.playing {
		b.WriteString(StyleDim.Render("  playing"))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  space autoplay  r reset  q quit"))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Character-Grid Tree View
// =============================================================================

// cellWidth is the column width of the character grid. Wide enough for
// three-digit values with a space either side.
const cellWidth = 5

// renderTree draws the tree on a character grid using the layout engine with
// unit spacing: the x coordinate becomes the grid column, the y coordinate
// the node row. The node equal to highlight (if non-nil) is drawn with the
// style for the given highlight class.
func renderTree(t *bst.Tree, highlight *int, class string) string {
	if t.Empty() {
		return StyleDim.Render("(empty tree)")
	}

	l := layout.Build(t,
		layout.WithSpacing(1, 1),
		layout.WithPadding(0),
		layout.WithNodeRadius(0),
	)

	depth := 0
	for _, p := range l.Positions {
		if int(p.Y) > depth {
			depth = int(p.Y)
		}
	}

	// Two text rows per tree level: nodes, then connectors.
	rows := make([][]rune, depth*2+1)
	width := 0
	for _, p := range l.Positions {
		if c := int(p.X)*cellWidth + cellWidth; c > width {
			width = c
		}
	}
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
	}

	// Connectors first so node labels overwrite them on collisions.
	for _, e := range l.Edges {
		row := int(e.From.Y)*2 + 1
		pCol := int(e.From.X)*cellWidth + cellWidth/2
		cCol := int(e.To.X)*cellWidth + cellWidth/2
		mid := (pCol + cCol) / 2
		ch := '/'
		if e.Dir == layout.DirRight {
			ch = '\\'
		}
		if mid >= 0 && mid < width {
			rows[row][mid] = ch
		}
	}

	type label struct {
		row, col int
		text     string
		styled   bool
	}
	var labels []label
	for value, p := range l.Positions {
		text := fmt.Sprintf("%d", value)
		col := int(p.X)*cellWidth + (cellWidth-len(text))/2
		labels = append(labels, label{
			row:    int(p.Y) * 2,
			col:    col,
			text:   text,
			styled: highlight != nil && value == *highlight,
		})
	}

	// Blank out label cells in the rune grid, then splice styled text in at
	// render time so ANSI codes never disturb grid alignment.
	for _, lb := range labels {
		for i := 0; i < len(lb.text); i++ {
			if lb.col+i < width {
				rows[lb.row][lb.col+i] = rune(lb.text[i])
			}
		}
	}

	style, ok := highlightStyles[class]
	if !ok {
		style = StyleValue
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	for _, lb := range labels {
		if !lb.styled {
			continue
		}
		line := lines[lb.row]
		if lb.col+len(lb.text) <= len(line) {
			lines[lb.row] = line[:lb.col] + style.Render(lb.text) + line[lb.col+len(lb.text):]
		}
	}

	return strings.Join(lines, "\n")
}
