package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"bubblepop/internal/config"
	"bubblepop/internal/game"
	"bubblepop/internal/store"
)

var (
	bgColor    = color.RGBA{24, 24, 28, 255}
	hudColor   = colornames.White
	dimColor   = color.RGBA{150, 150, 160, 255}
	alertColor = colornames.Tomato
)

type Game struct {
	cfg     config.Config
	loop    *game.Loop
	queue   *game.FrameQueue
	surface *retainedSurface
	sounds  *sounds
	start   time.Time

	touchIDs     []ebiten.TouchID
	lastPop      string
	isFullscreen bool
}

// vibrator forwards haptic pulses to the device; desktops ignore them.
type vibrator struct{}

func (vibrator) Vibrate(d time.Duration) {
	ebiten.Vibrate(&ebiten.VibrateOptions{Duration: d, Magnitude: 0.5})
}

func NewGame(cfg config.Config, st game.ScoreStore) (*Game, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err := game.NewSession(cfg, st, rng, vibrator{})
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:     cfg,
		queue:   game.NewFrameQueue(),
		surface: newRetainedSurface(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		start:   time.Now(),
	}
	g.loop = game.NewLoop(session, g.queue, g.surface, cfg.Window.MaxFPS)
	if cfg.Window.Sound {
		g.sounds = newSounds()
	}
	return g, nil
}

func (g *Game) Update() error {
	// Toggle full-screen/maximized with F11
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.isFullscreen = !g.isFullscreen
		if g.isFullscreen {
			ebiten.MaximizeWindow()
		} else {
			ebiten.RestoreWindow()
			ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.isFullscreen {
			g.isFullscreen = false
			ebiten.RestoreWindow()
			ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
		} else {
			g.loop.Stop()
		}
	}

	if g.loop.State() == game.Stopped {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.startMode(g.cfg.DefaultMode)
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.switchMode("zen")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.switchMode("fast")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.loop.TogglePause()
	}

	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(key) && g.loop.ActivatePowerUp(game.PowerUpKinds()[i]) {
			g.sounds.play(soundPowerUp)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.pointer(float64(x), float64(y), game.Mouse)
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.pointer(float64(x), float64(y), game.Touch)
	}

	g.queue.Fire(time.Since(g.start))
	return nil
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

func (g *Game) pointer(x, y float64, src game.PointerSource) {
	pop, ok := g.loop.Pointer(x, y, src)
	if !ok {
		return
	}
	g.lastPop = fmt.Sprintf("%+d", pop.Points)
	switch {
	case pop.Points < 0:
		g.sounds.play(soundNegative)
	case pop.Multiplier > 1:
		g.sounds.play(soundCombo)
	default:
		g.sounds.play(soundPop)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	if g.loop.State() == game.Stopped {
		g.drawTitle(screen)
		return
	}

	g.surface.Replay(screen)
	g.drawHUD(screen)
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	b := g.surface.Bounds()
	lines := []string{
		g.cfg.Window.Title,
		"Pop the bubbles before they float away!",
		"Click/Tap: Pop, P: Pause, 1/2/3: Power-ups",
		"Z: Zen mode, X: Fast mode, F11: Maximize",
		"Press Enter, Space or click to start!",
		fmt.Sprintf("High Score: %d", g.loop.Session().HighScore()),
	}
	lineHeight := 20.0
	startY := (b.Height - float64(len(lines))*lineHeight) / 2
	for i, line := range lines {
		x := (b.Width - float64(len(line))*7) / 2
		y := startY + float64(i)*lineHeight
		text.Draw(screen, line, basicfont.Face7x13, int(x), int(y), hudColor)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.loop.Session()
	mode, _ := s.Mode()
	lines := []string{
		fmt.Sprintf("Score: %d | High Score: %d | Mode: %s", s.Score(), s.HighScore(), mode),
	}
	if s.Combo().Multiplier() > 1 {
		lines = append(lines, fmt.Sprintf("Combo: x%g", s.Combo().Multiplier()))
	}
	var active []string
	for i, k := range game.PowerUpKinds() {
		pm := s.PowerUps()
		switch pm.State(k) {
		case game.Active:
			active = append(active, fmt.Sprintf("%d:%s %.1fs", i+1, k, pm.Remaining(k).Seconds()))
		case game.Cooldown:
			active = append(active, fmt.Sprintf("%d:%s (%.0fs)", i+1, k, pm.Remaining(k).Seconds()))
		}
	}
	if len(active) > 0 {
		lines = append(lines, strings.Join(active, "  "))
	}
	if g.loop.State() == game.Paused {
		lines = append(lines, "Paused - Press P to Resume")
	}

	padding, lineHeight := 10, 18
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, padding, padding+13+i*lineHeight, hudColor)
	}
	if g.lastPop != "" {
		c := dimColor
		if strings.HasPrefix(g.lastPop, "-") {
			c = alertColor
		}
		b := g.surface.Bounds()
		text.Draw(screen, g.lastPop, basicfont.Face7x13, int(b.Width)-padding-7*len(g.lastPop), padding+13, c)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.isFullscreen = ebiten.IsWindowMaximized()
	g.surface.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func main() {
	initConfig := flag.Bool("init-config", false, "write the default config file and exit")
	flag.Parse()

	path := config.Path()
	if *initConfig {
		if err := config.Save(path, config.Default()); err != nil {
			log.Fatal(err)
		}
		fmt.Println("wrote", path)
		return
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	storePath := cfg.Window.StorePath
	if storePath == "" {
		storePath = filepath.Join(config.Dir(), "scores.json")
	}
	g, err := NewGame(cfg, store.NewFile(storePath))
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
