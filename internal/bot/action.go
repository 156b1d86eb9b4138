package bot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCustomID is returned for component IDs no handler understands.
	ErrUnknownCustomID = errors.New("unknown custom id")
	// ErrUnsupportedAction is returned when an edit has no reconciliation,
	// such as picking an expression for a character without expressions.
	ErrUnsupportedAction = errors.New("unsupported action")
)

const customIDSep = ":"

// ActionKind identifies a UI action on a rendered dialogue box.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	// ActionEditText opens the text editor modal.
	ActionEditText
	// ActionSubmitText carries the submitted text editor modal.
	ActionSubmitText
	// ActionOpenExpressionPicker opens the expression selector.
	ActionOpenExpressionPicker
	// ActionSelectExpression carries a chosen expression for a target message.
	ActionSelectExpression
)

func (k ActionKind) String() string {
	switch k {
	case ActionEditText:
		return "edittext"
	case ActionSubmitText:
		return "modal:text"
	case ActionOpenExpressionPicker:
		return "expression"
	case ActionSelectExpression:
		return "select:expression"
	default:
		return "unknown"
	}
}

// Action is a decoded component or modal custom ID. The first segment of a
// custom ID names the command that owns it.
type Action struct {
	Command string
	Kind    ActionKind
	// MessageID is the dialogue box a picker edits. Only set for
	// ActionSelectExpression.
	MessageID string
}

// CustomID encodes the action for use on a component or modal.
func (a Action) CustomID() string {
	id := a.Command + customIDSep + a.Kind.String()
	if a.Kind == ActionSelectExpression {
		id += customIDSep + a.MessageID
	}
	return id
}

// CommandOf returns the command name that owns a custom ID.
func CommandOf(customID string) string {
	name, _, _ := strings.Cut(customID, customIDSep)
	return name
}

// ParseAction decodes a custom ID produced by Action.CustomID.
func ParseAction(customID string) (Action, error) {
	command, rest, ok := strings.Cut(customID, customIDSep)
	if !ok || command == "" {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownCustomID, customID)
	}

	a := Action{Command: command}
	switch rest {
	case ActionEditText.String():
		a.Kind = ActionEditText
	case ActionSubmitText.String():
		a.Kind = ActionSubmitText
	case ActionOpenExpressionPicker.String():
		a.Kind = ActionOpenExpressionPicker
	default:
		prefix := ActionSelectExpression.String() + customIDSep
		msgID, found := strings.CutPrefix(rest, prefix)
		if !found || msgID == "" {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownCustomID, customID)
		}
		a.Kind = ActionSelectExpression
		a.MessageID = msgID
	}

	return a, nil
}
