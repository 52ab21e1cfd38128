package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// panelCommand creates the "panel" command.
func (c *CLI) panelCommand() *cobra.Command {
	var (
		object string
		list   string
	)

	cmd := &cobra.Command{
		Use:   "panel <scene.json>",
		Short: "Interactive shapekey panel over a scene document",
		Long: `Panel opens an interactive view of an object's shapekey list. Actions
mirror the CLI commands: tidy, prune, split, check, and fill. Actions
whose preconditions fail are shown disabled with the reason. Changes are
kept in memory until written with "w".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			sc, err := c.loadScene(args[0])
			if err != nil {
				return err
			}
			sceneID, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if list == "" {
				names := runner.Rosters().ListNames()
				if len(names) > 0 {
					list = names[0]
				}
			}

			m := NewPanelModel(cmd.Context(), runner, sc, sceneID, object, list)
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}

			pm, ok := final.(PanelModel)
			if !ok || !pm.Dirty {
				return nil
			}
			if err := c.saveScene(args[0], sc); err != nil {
				return err
			}
			printSuccess("Saved %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&object, "object", "o", "", "target object (default: the scene's only object)")
	cmd.Flags().StringVarP(&list, "list", "l", "", "expected list for check (default: first configured list)")

	return cmd
}

// panelAction binds a keypress to an operator with its precondition check.
type panelAction struct {
	key   string
	label string
}

// PanelModel is the bubbletea model for the interactive shapekey panel.
type PanelModel struct {
	ctx     context.Context
	runner  *ops.Runner
	scene   *scene.Scene
	sceneID string
	object  string
	list    string

	Cursor int
	Dirty  bool
	status string
}

// NewPanelModel creates a panel model over a scene document.
func NewPanelModel(ctx context.Context, runner *ops.Runner, sc *scene.Scene, sceneID, object, list string) PanelModel {
	return PanelModel{
		ctx:     ctx,
		runner:  runner,
		scene:   sc,
		sceneID: sceneID,
		object:  object,
		list:    list,
	}
}

func (m PanelModel) Init() tea.Cmd {
	return nil
}

// target resolves the panel's object. Resolution errors surface in View.
func (m PanelModel) target() *scene.Object {
	if m.object == "" {
		if len(m.scene.Objects) == 1 {
			return m.scene.Objects[0]
		}
		return nil
	}
	return m.scene.Object(m.object)
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	o := m.target()
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc", "w":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if o != nil && m.Cursor < len(o.Keys)-1 {
			m.Cursor++
		}
	case "enter":
		// Select the key under the cursor as the split source.
		if o != nil && m.Cursor < len(o.Keys) {
			o.ActiveKey = o.Keys[m.Cursor].Name
			m.Dirty = true
			m.status = fmt.Sprintf("Active key: %s", o.ActiveKey)
		}
	case "t":
		m.runOp(func() (string, error) {
			res, err := ops.TidyRequest{Object: m.object}.Apply(m.scene)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
		return m, nil
	case "p":
		m.runOp(func() (string, error) {
			res, err := ops.PruneRequest{Object: m.object}.Apply(m.scene)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
		if o != nil && m.Cursor >= len(o.Keys) && m.Cursor > 0 {
			m.Cursor = len(o.Keys) - 1
		}
		return m, nil
	case "s":
		m.runOp(func() (string, error) {
			pairs := m.runner.Rosters().Pairs
			if len(pairs) == 0 {
				return "", fmt.Errorf("no split pairs configured")
			}
			res, err := m.runner.SplitPair(m.scene, m.object, "", pairs[0])
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
		return m, nil
	case "c":
		m.runOpReadOnly(func() (string, error) {
			res, err := m.runner.Check(m.ctx, m.sceneID, m.scene, m.object, m.list)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
		return m, nil
	case "f":
		m.runOp(func() (string, error) {
			res, err := m.runner.Fill(m.ctx, m.sceneID, m.scene, m.object)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
		return m, nil
	}
	return m, nil
}

// runOp executes a mutating action and records its outcome in the status
// line. Precondition failures are reported, never treated as crashes.
func (m *PanelModel) runOp(fn func() (string, error)) {
	msg, err := fn()
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.Dirty = true
	m.status = msg
}

// runOpReadOnly is runOp for actions that never change the scene.
func (m *PanelModel) runOpReadOnly(fn func() (string, error)) {
	msg, err := fn()
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.status = msg
}

func (m PanelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shapekey Panel"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ set active  w write+quit  q quit"))
	b.WriteString("\n\n")

	o := m.target()
	if o == nil {
		b.WriteString(StyleWarning.Render("no target object: pass --object"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(StyleHighlight.Render(o.Name))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d keys  %d groups", len(o.Keys), len(o.Groups))))
	b.WriteString("\n\n")

	for i, k := range o.Keys {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := " "
		if k.Name == o.ActiveKey {
			marker = "*"
		}

		line := fmt.Sprintf("%s%s %-28s", cursor, marker, k.Name)
		if i > 0 {
			line += listDimStyle.Render(fmt.Sprintf("value %.2f", k.Value))
		} else {
			line += listDimStyle.Render("base")
		}

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case k.IsDisposable():
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.actionBar())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleValue.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// actionBar renders each action with its key, dimmed with the blocking
// reason when the precondition fails.
func (m PanelModel) actionBar() string {
	checks := []struct {
		action panelAction
		err    error
	}{
		{panelAction{"t", "tidy"}, ops.TidyRequest{Object: m.object}.Validate(m.scene)},
		{panelAction{"p", "prune"}, ops.PruneRequest{Object: m.object}.Validate(m.scene)},
		{panelAction{"s", "split"}, m.splitPrecondition()},
		{panelAction{"c", "check"}, ops.CheckRequest{Object: m.object, Expected: []string{"-"}}.Validate(m.scene)},
		{panelAction{"f", "fill"}, m.fillPrecondition()},
	}

	var parts []string
	for _, ch := range checks {
		label := fmt.Sprintf("%s %s", ch.action.key, ch.action.label)
		if ch.err != nil {
			parts = append(parts, listDimStyle.Render(label+" ("+errors.UserMessage(ch.err)+")"))
			continue
		}
		parts = append(parts, listNormalStyle.Render(label))
	}
	return strings.Join(parts, listDimStyle.Render("  ·  "))
}

func (m PanelModel) splitPrecondition() error {
	pairs := m.runner.Rosters().Pairs
	if len(pairs) == 0 {
		return fmt.Errorf("no split pairs configured")
	}
	return ops.SplitRequest{Object: m.object, GroupA: pairs[0].A, GroupB: pairs[0].B}.Validate(m.scene)
}

func (m PanelModel) fillPrecondition() error {
	o := m.target()
	if o == nil {
		return fmt.Errorf("no target object")
	}
	rep, err := m.runner.Pending(m.ctx, m.sceneID, o.Name)
	if err != nil {
		return err
	}
	if rep == nil {
		return fmt.Errorf("run check first")
	}
	return nil
}
