// Command simulate runs a level headless at a fixed tick and prints a trace of
// the player's state and stage events.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/platforming/assets"
	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/stage"
)

func main() {
	configPath := flag.String("config", "", "YAML or TOML tuning file")
	levelPath := flag.String("level", "", "level file on disk, or the name of a bundled level (default from config)")
	frames := flag.Int("frames", 0, "frames to run (default: script length, or 300)")
	tickRate := flag.Int("tickrate", 0, "ticks per second in real time (0 = as fast as possible)")
	every := flag.Int("every", 10, "print a snapshot every N frames (0 = events only)")
	scriptFlag := flag.String("script", "", `held inputs, e.g. "30:right,10:right+jump,60:idle"`)
	flag.Parse()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	platforming.Debug = config.Debug.Asserts

	sc, err := parseScript(*scriptFlag)
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}
	total := *frames
	if total <= 0 {
		total = sc.Len()
	}
	if total <= 0 {
		total = 300
	}

	file, err := loadLevel(*levelPath)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	s, err := stage.Build(file)
	if err != nil {
		log.Fatalf("Failed to build level: %v", err)
	}

	dt := 1 / float64(config.Sim.TickRate)
	loop := NewGameLoop(func() bool {
		in, _ := sc.At(s.Frame)
		s.Player.Intent = in
		for _, ev := range s.Step(dt) {
			fmt.Println(ev)
		}
		if *every > 0 && s.Frame%*every == 0 {
			fmt.Println(s.Snapshot())
		}
		return s.Frame < total && !s.Finished
	}, *tickRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		loop.Stop()
	}()

	loop.Run()
	fmt.Println(s.Snapshot())
	log.Printf("[simulate] %s: %d frames, %d deaths, finished=%v", s.Name, s.Frame, s.Deaths, s.Finished)
}

// loadLevel reads path from disk when it exists, otherwise looks it up by
// name among the bundled levels.
func loadLevel(path string) (*leveldata.LevelFile, error) {
	if path == "" {
		path = config.Sim.Level
	}
	if _, err := os.Stat(path); err == nil {
		return leveldata.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	}
	if file, err := leveldata.Load(assets.FS(), filepath.ToSlash(path)); err == nil {
		return file, nil
	}
	base := filepath.Base(path)
	return assets.NewLevelLoader().Level(base[:len(base)-len(filepath.Ext(base))])
}
