package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treetrace/internal/config"
	"github.com/matzehuels/treetrace/pkg/bst"
	"github.com/matzehuels/treetrace/pkg/errors"
	"github.com/matzehuels/treetrace/pkg/treeio"
)

// newInsertCmd creates the insert command. Values are inserted one by one,
// each producing its own trace; the mutated tree is written back to the file.
func newInsertCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <file> <value>...",
		Short: "Insert values into a tree and show the traces",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			values, err := errors.ParseValues(args[1:])
			if err != nil {
				return err
			}

			tree, err := treeio.ReadTreeFileOrEmpty(path)
			if err != nil {
				return err
			}

			for _, v := range values {
				steps := tree.Insert(v)
				printTrace(fmt.Sprintf("insert %d", v), steps)
			}

			if err := treeio.WriteTreeFile(tree, path); err != nil {
				return err
			}
			logger.Debugf("Saved %s", path)

			printStats(tree.Size(), tree.Height(), 0, false)
			printNextStep("Render it", fmt.Sprintf("treetrace render %s", path))
			return nil
		},
	}
}

// newSearchCmd creates the search command.
func newSearchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "search <file> <value>",
		Short: "Search a tree and show the trace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := errors.ParseValue(args[1])
			if err != nil {
				return err
			}

			tree, err := treeio.ReadTreeFile(args[0])
			if err != nil {
				return err
			}

			steps := tree.Search(value)
			printTrace(fmt.Sprintf("search %d", value), steps)

			last := steps[len(steps)-1]
			if last.Action == bst.ActionFound {
				printSuccess("Found %d after %d steps", value, len(steps))
			} else {
				printWarning("%d is not in the tree (%d steps)", value, len(steps))
			}
			return nil
		},
	}
}

// newTraverseCmd creates the traverse command.
func newTraverseCmd(cfg *config.Config) *cobra.Command {
	var orderStr string

	cmd := &cobra.Command{
		Use:   "traverse <file>",
		Short: "Traverse a tree and show the trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, ok := bst.ParseOrder(orderStr)
			if !ok {
				return errors.New(errors.ErrCodeInvalidOrder,
					"invalid order: %q (must be one of: inorder, preorder, postorder)", orderStr)
			}

			tree, err := treeio.ReadTreeFile(args[0])
			if err != nil {
				return err
			}

			steps := tree.Traverse(order)
			printTrace(fmt.Sprintf("%s traversal", order), steps)

			visited := bst.VisitedValues(steps)
			printInfo("Visited order: %s", joinInts(visited))
			return nil
		},
	}

	cmd.Flags().StringVarP(&orderStr, "order", "o", "inorder", "traversal order: inorder, preorder, postorder")
	return cmd
}

// newClearCmd creates the clear command.
func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <file>",
		Short: "Empty a tree file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := bst.New()
			if err := treeio.WriteTreeFile(tree, args[0]); err != nil {
				return err
			}
			printSuccess("Cleared %s", args[0])
			return nil
		},
	}
}

// =============================================================================
// Trace Display
// =============================================================================

// printTrace prints a step trace as a table.
func printTrace(title string, steps []bst.Step) {
	fmt.Println(StyleTitle.Render(title))

	rows := make([][]string, len(steps))
	for i, s := range steps {
		node := "—"
		if s.HasValue {
			node = strconv.Itoa(s.Value)
		}
		rows[i] = []string{strconv.Itoa(i + 1), s.Action.String(), node, s.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Action", "Node", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				if style, ok := actionStyles[rows[row][1]]; ok {
					return style
				}
			}
			if col == 0 {
				return StyleDim
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

// joinInts formats values as a comma-separated list.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
