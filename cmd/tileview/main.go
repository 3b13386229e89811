// Command tileview plays a level in the terminal, one character per tile.
//
// Terminals report key presses but not releases, so a key counts as held
// for a short window after each press or auto-repeat.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/automoto/platforming/assets"
	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/actors"
	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/stage"
)

// holdFrames is how long a key counts as held after its last event.
const holdFrames = 10

type action int

const (
	actionLeft action = iota
	actionRight
	actionJump
	actionCount
)

type viewer struct {
	screen tcell.Screen
	stage  *stage.Stage
	levels *assets.LevelLoader
	names  []string
	index  int

	frame     int
	lastPress [actionCount]int

	audioInit  bool
	sampleRate beep.SampleRate
}

func main() {
	configPath := flag.String("config", "", "YAML or TOML tuning file")
	levelPath := flag.String("level", "", "level file on disk (default: the bundled levels)")
	mute := flag.Bool("mute", false, "disable the landing sound")
	flag.Parse()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	platforming.Debug = config.Debug.Asserts

	v := &viewer{levels: assets.NewLevelLoader(), sampleRate: beep.SampleRate(config.Audio.SampleRate)}
	for i := range v.lastPress {
		v.lastPress[i] = -holdFrames
	}

	var file *leveldata.LevelFile
	var err error
	if *levelPath != "" {
		file, err = leveldata.Load(os.DirFS(filepath.Dir(*levelPath)), filepath.Base(*levelPath))
	} else {
		v.names, err = v.levels.Names()
		if err == nil {
			file, err = v.levels.Level(v.names[0])
		}
	}
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	if err := v.build(file); err != nil {
		log.Fatalf("Failed to build level: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	v.screen = screen

	if !*mute {
		if err := v.initAudio(); err != nil {
			// Non-fatal, runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	v.run()
	v.cleanup()
	fmt.Printf("%s: %d deaths, finished=%v\n", v.stage.Name, v.stage.Deaths, v.stage.Finished)
}

func (v *viewer) build(file *leveldata.LevelFile) error {
	s, err := stage.Build(file)
	if err != nil {
		return err
	}
	s.Player.OnLand = v.playLandSound
	v.stage = s
	return nil
}

func (v *viewer) initAudio() error {
	err := speaker.Init(v.sampleRate, v.sampleRate.N(time.Second/10))
	if err == nil {
		v.audioInit = true
	}
	return err
}

func (v *viewer) playLandSound(platforming.Collider) {
	if !v.audioInit {
		return
	}
	sine, err := generators.SineTone(v.sampleRate, 220)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(v.sampleRate.N(40*time.Millisecond), sine))
}

func (v *viewer) held(a action) bool {
	return v.frame-v.lastPress[a] < holdFrames
}

// handleInput returns false when the viewer should quit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.lastPress[actionLeft] = v.frame
		case tcell.KeyRight:
			v.lastPress[actionRight] = v.frame
		case tcell.KeyUp:
			v.lastPress[actionJump] = v.frame
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a':
				v.lastPress[actionLeft] = v.frame
			case 'd':
				v.lastPress[actionRight] = v.frame
			case ' ', 'w':
				v.lastPress[actionJump] = v.frame
			case 'r':
				v.stage.Player.Respawn(v.stage.Spawn.X, v.stage.Spawn.Y)
			case 'n':
				v.switchLevel(1)
			case 'b':
				v.switchLevel(-1)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) switchLevel(delta int) {
	if len(v.names) == 0 {
		return
	}
	v.index = ((v.index+delta)%len(v.names) + len(v.names)) % len(v.names)
	file, err := v.levels.Level(v.names[v.index])
	if err != nil {
		return
	}
	_ = v.build(file)
}

func (v *viewer) tick() {
	var in actors.Intent
	if v.held(actionLeft) {
		in.Move--
	}
	if v.held(actionRight) {
		in.Move++
	}
	in.Jump = v.held(actionJump)
	v.stage.Player.Intent = in

	v.stage.Step(1 / float64(config.Sim.TickRate))
	v.frame++
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Second / time.Duration(config.Sim.TickRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.tick()
			draw(v.screen, v.stage)
			v.screen.Show()
		}
	}
}

func (v *viewer) cleanup() {
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
}
