package game

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidTransition is returned when an action has no meaning in the
// current state. The state is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrUnknownAction is returned by ParseAction for unrecognized identifiers.
var ErrUnknownAction = errors.New("unknown action")

// ActionKind enumerates the UI actions.
type ActionKind int

const (
	ActionStart ActionKind = iota + 1
	ActionLevels
	ActionExit
	ActionBack
	ActionResume
	ActionPause
	ActionMenu
	ActionNextLevel
	ActionRetry
	ActionSelectLevel
)

// Action is a UI command. Level is set only for ActionSelectLevel.
type Action struct {
	Kind  ActionKind
	Level int
}

// Convenience values for the parameterless actions.
var (
	Start     = Action{Kind: ActionStart}
	Levels    = Action{Kind: ActionLevels}
	Exit      = Action{Kind: ActionExit}
	Back      = Action{Kind: ActionBack}
	Resume    = Action{Kind: ActionResume}
	Pause     = Action{Kind: ActionPause}
	Menu      = Action{Kind: ActionMenu}
	NextLevel = Action{Kind: ActionNextLevel}
	Retry     = Action{Kind: ActionRetry}
)

// SelectLevel returns the action that starts level n.
func SelectLevel(n int) Action {
	return Action{Kind: ActionSelectLevel, Level: n}
}

var actionIDs = map[string]Action{
	"start":     Start,
	"levels":    Levels,
	"exit":      Exit,
	"back":      Back,
	"resume":    Resume,
	"pause":     Pause,
	"menu":      Menu,
	"nextLevel": NextLevel,
	"retry":     Retry,
}

// ParseAction maps a UI region identifier to an Action. Level options are
// identified by their number.
func ParseAction(id string) (Action, error) {
	if a, ok := actionIDs[id]; ok {
		return a, nil
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= MaxLevel {
		return SelectLevel(n), nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, id)
}

// String returns the UI identifier of the action.
func (a Action) String() string {
	if a.Kind == ActionSelectLevel {
		return strconv.Itoa(a.Level)
	}
	for id, v := range actionIDs {
		if v == a {
			return id
		}
	}
	return fmt.Sprintf("action(%d)", int(a.Kind))
}
