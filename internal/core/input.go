package core

// Action represents a semantic board action, abstracted from physical key
// presses. The platform maps keys (or SSH session input) to actions; the
// session model translates actions into Assembly Store operations.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move cursor or grabbed piece up
	ActionDown             // S, Down arrow - move cursor or grabbed piece down
	ActionLeft             // A, Left arrow - move cursor or grabbed piece left
	ActionRight            // D, Right arrow - move cursor or grabbed piece right
	ActionGrab             // Enter, Space - grab piece under cursor / drop grabbed piece
	ActionRotateCW         // E, ] - rotate grabbed piece clockwise
	ActionRotateCCW        // Q, [ - rotate grabbed piece counterclockwise
	ActionCycle            // Tab - select next piece
	ActionPause            // P - pause/unpause the timer
	ActionRestart          // R - start a new puzzle
	ActionBack             // Esc - back to menu (SSH sessions)
	ActionQuit             // Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionGrab:
		return "Grab"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionCycle:
		return "Cycle"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single UI tick. It contains
// all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
