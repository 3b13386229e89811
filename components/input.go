package components

import "github.com/yohamta/donburi"

// ActionID names a bindable input action.
type ActionID int

const (
	ActionMoveLeft ActionID = iota
	ActionMoveRight
	ActionJump
	ActionRespawn
	ActionNextLevel
	ActionPrevLevel
	ActionToggleDebug
	ActionToggleMute
	ActionStep
	ActionPause
	ActionCount
)

// InputData stores the current and previous frame's pressed state for all
// actions. JustPressed is computed by comparing frames.
type InputData struct {
	Current  [ActionCount]bool
	Previous [ActionCount]bool
}

func (i *InputData) Pressed(a ActionID) bool     { return i.Current[a] }
func (i *InputData) JustPressed(a ActionID) bool { return i.Current[a] && !i.Previous[a] }

var Input = donburi.NewComponentType[InputData]()
