package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/automoto/platforming/shared/actors"
)

var errBadScript = errors.New("bad input script")

// step is an intent held for a number of frames.
type step struct {
	frames int
	intent actors.Intent
}

// script is a sequence of held intents, written as comma-separated
// "frames:action" items, where action joins left, right, jump and idle with
// '+'. For example "30:right,10:right+jump,60:idle".
type script []step

func parseScript(s string) (script, error) {
	var out script
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}
	for _, item := range strings.Split(s, ",") {
		count, action, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q has no ':'", errBadScript, item)
		}
		n, err := strconv.Atoi(count)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: frame count %q", errBadScript, count)
		}

		var in actors.Intent
		for _, a := range strings.Split(action, "+") {
			switch strings.ToLower(strings.TrimSpace(a)) {
			case "left":
				in.Move--
			case "right":
				in.Move++
			case "jump":
				in.Jump = true
			case "idle", "":
			default:
				return nil, fmt.Errorf("%w: unknown action %q", errBadScript, a)
			}
		}
		out = append(out, step{frames: n, intent: in})
	}
	return out, nil
}

// At returns the intent for frame, and false past the end of the script.
func (s script) At(frame int) (actors.Intent, bool) {
	for _, st := range s {
		if frame < st.frames {
			return st.intent, true
		}
		frame -= st.frames
	}
	return actors.Intent{}, false
}

// Len is the total number of scripted frames.
func (s script) Len() int {
	n := 0
	for _, st := range s {
		n += st.frames
	}
	return n
}
