package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treetrace/pkg/session"
)

// tutorialPages is the onboarding content, one string per page.
var tutorialPages = []struct {
	title string
	body  string
}{
	{
		title: "Binary search trees",
		body: `A binary search tree keeps every node's value larger than everything
in its left subtree and smaller than everything in its right subtree.

        50
       /  \
     30    70
    /  \
  20    40

That single rule is what makes searching fast: at every node you can
discard half the remaining tree.`,
	},
	{
		title: "Inserting",
		body: `New values walk down from the root, going left when they are smaller
and right when they are larger, until they fall off the tree. That is
where the new node is attached.

Try it:

  treetrace insert mytree.json 50 30 70
  treetrace play mytree.json --insert 40

Duplicates are rejected: the walk finds the equal node and stops.`,
	},
	{
		title: "Searching",
		body: `Searching follows the same walk as inserting. Each step of the walk
is recorded, so you can watch the comparisons happen:

  treetrace play mytree.json --search 70

A search that falls off the tree ends with NOT_FOUND.`,
	},
	{
		title: "Traversals",
		body: `Traversals visit every node. Inorder visits values in sorted order;
preorder visits parents before children; postorder visits children
before parents.

  treetrace traverse mytree.json --order inorder
  treetrace play mytree.json --traverse preorder`,
	},
	{
		title: "Rendering",
		body: `Trees render to SVG, PNG, PDF, DOT, and JSON:

  treetrace render mytree.json -f svg,png
  treetrace render mytree.json -t graphviz -o tree.svg

Or serve everything over HTTP:

  treetrace serve`,
	},
}

// newTutorialCmd creates the tutorial command.
func newTutorialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tutorial",
		Short: "Interactive introduction to search trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := tea.NewProgram(tutorialModel{}).Run(); err != nil {
				return err
			}
			return markTutorialSeen(cmd)
		},
	}
}

// markTutorialSeen records in the CLI session that the tutorial ran.
// Failures are logged, not fatal: the tutorial itself already succeeded.
func markTutorialSeen(cmd *cobra.Command) error {
	logger := loggerFromContext(cmd.Context())

	store, err := session.NewCLIStore()
	if err != nil {
		logger.Debugf("session store unavailable: %v", err)
		return nil
	}
	sess, err := store.Load(cmd.Context())
	if err != nil {
		logger.Debugf("load session: %v", err)
		return nil
	}
	sess.TutorialSeen = true
	if err := store.Save(cmd.Context(), sess); err != nil {
		logger.Debugf("save session: %v", err)
	}
	return nil
}

// =============================================================================
// Tutorial Model
// =============================================================================

// tutorialModel is the bubbletea model for the tutorial pager.
type tutorialModel struct {
	page int
}

func (m tutorialModel) Init() tea.Cmd {
	return nil
}

func (m tutorialModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ", "enter":
			if m.page < len(tutorialPages)-1 {
				m.page++
			} else {
				return m, tea.Quit
			}
		case "left", "h", "p":
			if m.page > 0 {
				m.page--
			}
		}
	}
	return m, nil
}

func (m tutorialModel) View() string {
	page := tutorialPages[m.page]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(page.title))
	b.WriteString("\n\n")
	b.WriteString(page.body)
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d/%d]", m.page+1, len(tutorialPages))))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("←/→ pages  q quit"))
	b.WriteString("\n")
	return b.String()
}
