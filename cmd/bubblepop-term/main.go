// Command bubblepop-term plays Bubble Pop in a terminal with mouse support.
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"bubblepop/internal/config"
	"bubblepop/internal/game"
	"bubblepop/internal/store"
)

type Game struct {
	screen  tcell.Screen
	cfg     config.Config
	loop    *game.Loop
	queue   *game.FrameQueue
	surface *cellSurface
	start   time.Time

	// Mouse button state from the previous event; terminals report held
	// buttons on every motion event.
	buttons tcell.ButtonMask

	// Audio
	audioInit bool
}

// bell stands in for a haptic pulse.
type bell struct{ screen tcell.Screen }

func (b bell) Vibrate(time.Duration) { _ = b.screen.Beep() }

func NewGame(screen tcell.Screen, cfg config.Config, st game.ScoreStore, rng game.Rand) (*Game, error) {
	session, err := game.NewSession(cfg, st, rng, bell{screen})
	if err != nil {
		return nil, err
	}
	screen.EnableMouse()
	g := &Game{
		screen:  screen,
		cfg:     cfg,
		queue:   game.NewFrameQueue(),
		surface: newCellSurface(screen),
		start:   time.Now(),
	}
	g.loop = game.NewLoop(session, g.queue, g.surface, cfg.Window.MaxFPS)
	return g, nil
}

func (g *Game) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		g.audioInit = true
	}
	return err
}

func (g *Game) playPopSound(points int) {
	if !g.audioInit {
		return
	}
	freq := 880
	if points < 0 {
		freq = 220
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), sine))
}

// handleInput returns false when the player quits.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		g.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if g.loop.State() == game.Stopped {
			g.startMode(g.cfg.DefaultMode)
		}
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		if g.loop.State() == game.Stopped {
			g.startMode(g.cfg.DefaultMode)
		}
	case 'p':
		g.loop.TogglePause()
	case 'z':
		g.switchMode("zen")
	case 'x':
		g.switchMode("fast")
	case '1', '2', '3':
		g.loop.ActivatePowerUp(game.PowerUpKinds()[r-'1'])
	}
	return true
}

func (g *Game) handleMouse(col, row int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
	g.buttons = buttons
	if !pressed {
		return
	}
	if g.loop.State() == game.Stopped {
		g.startMode(g.cfg.DefaultMode)
		return
	}
	x, y := cellCenter(col, row)
	if pop, ok := g.loop.Pointer(x, y, game.Mouse); ok {
		g.playPopSound(pop.Points)
	}
}

func (g *Game) startMode(mode string) {
	if err := g.loop.Start(mode); err != nil {
		log.Printf("start %s: %v", mode, err)
	}
}

func (g *Game) switchMode(mode string) {
	if err := g.loop.SetMode(mode); err != nil {
		log.Printf("mode %s: %v", mode, err)
	}
}

// step fires the pending frame and paints the status line over it.
func (g *Game) step(now time.Duration) {
	g.queue.Fire(now)
	if g.loop.State() == game.Stopped {
		g.surface.Clear()
		g.drawTitle()
	} else {
		g.drawHUD()
	}
	g.screen.Show()
}

func (g *Game) drawText(col, row int, s string, st tcell.Style) {
	for i, r := range s {
		g.screen.SetContent(col+i, row, r, nil, st)
	}
}

func (g *Game) drawTitle() {
	cols, rows := g.screen.Size()
	lines := []string{
		g.cfg.Window.Title,
		"Click bubbles to pop them",
		"p: pause  1/2/3: power-ups  z/x: zen/fast  q: quit",
		"Press Enter, Space or click to start",
		fmt.Sprintf("High Score: %d", g.loop.Session().HighScore()),
	}
	top := (rows - len(lines)) / 2
	for i, line := range lines {
		g.drawText((cols-len(line))/2, top+i, line, bgStyle)
	}
}

func (g *Game) hudLine() string {
	s := g.loop.Session()
	mode, _ := s.Mode()
	parts := []string{fmt.Sprintf("Score: %d  High: %d  Mode: %s", s.Score(), s.HighScore(), mode)}
	if m := s.Combo().Multiplier(); m > 1 {
		parts = append(parts, fmt.Sprintf("x%g", m))
	}
	for _, k := range game.PowerUpKinds() {
		if s.PowerUps().IsActive(k) {
			parts = append(parts, k.String())
		}
	}
	if g.loop.State() == game.Paused {
		parts = append(parts, "PAUSED")
	}
	return strings.Join(parts, " | ")
}

func (g *Game) drawHUD() {
	g.drawText(0, 0, g.hudLine(), bgStyle.Bold(true))
}

func (g *Game) run() {
	frame := 16 * time.Millisecond // ~60 FPS
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.step(time.Since(g.start))
		}
	}
}

func (g *Game) cleanup() {
	g.loop.Stop()
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

// logToFile sends the standard logger to path for as long as tcell owns the
// terminal. If the file cannot be opened logging is discarded.
func logToFile(path string) io.Closer {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			log.SetOutput(f)
			return f
		}
	}
	log.SetOutput(io.Discard)
	return io.NopCloser(nil)
}

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	storePath := cfg.Window.StorePath
	if storePath == "" {
		storePath = filepath.Join(config.Dir(), "scores.json")
	}

	logFile := logToFile(filepath.Join(config.Dir(), "bubblepop-term.log"))
	defer logFile.Close()
	defer log.SetOutput(os.Stderr)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g, err := NewGame(screen, cfg, store.NewFile(storePath), rng)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	if cfg.Window.Sound {
		if err := g.initAudio(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	g.run()
}
