package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/platforming/shared/stage"
)

// StageData holds the running stage and which bundled level it came from.
type StageData struct {
	Stage      *stage.Stage
	LevelIndex int
	Levels     []string
	Paused     bool
}

var Stage = donburi.NewComponentType[StageData]()
