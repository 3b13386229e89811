package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/platforming/shared/platforming"
)

// BodyData links an entity to a body in the stage's physics level.
type BodyData struct {
	Body platforming.Body
}

var Body = donburi.NewComponentType[BodyData]()
