package main

import (
	"log"
	"time"
)

// GameLoop calls tick at a fixed rate until it returns false or Stop is
// called. A zero tick rate runs the ticks back to back.
type GameLoop struct {
	tick     func() bool
	tickRate int
	stopChan chan struct{}
}

func NewGameLoop(tick func() bool, tickRate int) *GameLoop {
	return &GameLoop{
		tick:     tick,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	if g.tickRate <= 0 {
		for {
			select {
			case <-g.stopChan:
				return
			default:
			}
			if !g.tick() {
				return
			}
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[simulate] loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[simulate] loop stopped")
			return
		case <-ticker.C:
			if !g.tick() {
				return
			}
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}
