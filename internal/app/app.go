// Package app runs a handbreaker session: the game loop, the camera
// producer feeding it gestures, and the renderer publishing frames.
package app

import (
	"errors"
	"log"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/handbreaker/internal/capture"
	"github.com/ayusman/handbreaker/internal/detector"
	"github.com/ayusman/handbreaker/internal/game"
	"github.com/ayusman/handbreaker/internal/gesture"
	"github.com/ayusman/handbreaker/internal/render"
	"github.com/ayusman/handbreaker/internal/sound"
	"github.com/ayusman/handbreaker/internal/store"
)

// ErrNotRunning is returned by input methods when the game loop is not
// running.
var ErrNotRunning = errors.New("app not running")

// Default loop rates.
const (
	DefaultFPS       = 60
	DefaultStreamFPS = 30
)

// Config holds configuration options for the application.
type Config struct {
	Params    game.Params
	FPS       int
	StreamFPS int

	CameraID     int
	MotionThresh float64
	AssetDir     string

	// Camera and Detector default to the real device and MediaPipe.
	Camera   capture.Camera
	Detector detector.Detector

	Store *store.Store
	Sound sound.Player

	// Clock defaults to time.Now.
	Clock func() time.Time
}

type command struct {
	fn    func(g *game.Game, now time.Time) error
	reply chan error
}

// App owns one game session. The game is only touched by the loop
// goroutine; everything else talks to it through channels.
type App struct {
	config   Config
	game     *game.Game
	camera   capture.Camera
	motion   *capture.MotionGate
	detector detector.Detector
	interp   *gesture.Interpreter
	assets   *render.Assets
	renderer *render.Renderer

	facts   chan gesture.Facts
	cmds    chan command
	camWake chan struct{}

	wantCamera atomic.Bool
	enabled    atomic.Bool
	runStart   time.Time

	mu       sync.RWMutex
	snap     game.Snapshot
	snapVer  uint64
	gameJPEG []byte
	gameVer  uint64
	camJPEG  []byte
	camVer   uint64

	runMu   sync.Mutex
	stopCh  chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// New creates an App on the intro screen.
func New(config Config) *App {
	if config.Params == (game.Params{}) {
		config.Params = game.DefaultParams()
	}
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}
	if config.StreamFPS <= 0 {
		config.StreamFPS = DefaultStreamFPS
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Camera == nil {
		config.Camera = capture.NewCamera(config.CameraID)
	}

	a := &App{
		config:  config,
		game:    game.New(config.Params),
		camera:  config.Camera,
		motion:  capture.NewMotionGate(config.MotionThresh),
		interp:  gesture.NewInterpreter(config.Params.Width, config.Params.Height),
		facts:   make(chan gesture.Facts, 1),
		cmds:    make(chan command),
		camWake: make(chan struct{}, 1),
	}
	a.enabled.Store(true)

	a.detector = config.Detector
	if a.detector == nil {
		// Try MediaPipe first, fall back to mock detector
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), gesture control disabled", err)
			a.detector = detector.NewMockDetector()
		}
	}

	a.assets = render.LoadAssets(config.AssetDir)
	a.renderer = render.New(a.assets, config.Params)

	a.game.OnEvent(a.onEvent)
	a.publish()
	return a
}

// Start launches the game loop, the camera producer and the renderer.
func (a *App) Start() error {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.stopped {
		return ErrNotRunning
	}
	if a.stopCh != nil {
		return nil
	}

	a.stopCh = make(chan struct{})
	a.wg.Add(3)
	go a.runLoop(a.stopCh)
	go a.runCamera(a.stopCh)
	go a.runRenderer(a.stopCh)

	log.Println("Game loop started")
	return nil
}

// Stop halts all goroutines and releases the camera, detector and
// renderer. The App cannot be started again.
func (a *App) Stop() {
	a.runMu.Lock()
	if a.stopped {
		a.runMu.Unlock()
		return
	}
	a.stopped = true
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.runMu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}
	a.renderer.Close()
	a.assets.Close()

	log.Println("Game loop stopped")
}

// SetEnabled turns gesture input on or off. Keyboard and pointer input
// are unaffected.
func (a *App) SetEnabled(enabled bool) {
	a.enabled.Store(enabled)
}

// IsEnabled returns whether gesture input is on.
func (a *App) IsEnabled() bool {
	return a.enabled.Load()
}

// Snapshot returns the latest published game state and its version. The
// version increases whenever the state changes.
func (a *App) Snapshot() (game.Snapshot, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap, a.snapVer
}

// GameFrame returns the latest rendered game frame as JPEG.
func (a *App) GameFrame() ([]byte, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.gameJPEG, a.gameVer
}

// CameraFrame returns the latest camera frame with the hand overlay as
// JPEG. Nil while the camera is released.
func (a *App) CameraFrame() ([]byte, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camJPEG, a.camVer
}

// Action dispatches the UI action with the given identifier.
func (a *App) Action(id string) error {
	return a.do(func(g *game.Game, now time.Time) error {
		return g.Click(id, now)
	})
}

// Key handles a key press by browser key name.
func (a *App) Key(key string) error {
	return a.do(func(g *game.Game, now time.Time) error {
		return g.Key(key, now)
	})
}

// Click handles a pointer click at canvas coordinates.
func (a *App) Click(x, y float64) error {
	return a.do(func(g *game.Game, now time.Time) error {
		return g.PointerClick(gesture.Point{X: x, Y: y}, now)
	})
}

// TogglePause pauses a running level or resumes a paused one.
func (a *App) TogglePause() error {
	return a.do(func(g *game.Game, now time.Time) error {
		if g.State() == game.StatePaused {
			return g.Dispatch(game.Resume, now)
		}
		return g.Dispatch(game.Pause, now)
	})
}

// do runs fn on the loop goroutine and waits for its result.
func (a *App) do(fn func(g *game.Game, now time.Time) error) error {
	a.runMu.Lock()
	stop := a.stopCh
	a.runMu.Unlock()
	if stop == nil {
		return ErrNotRunning
	}

	reply := make(chan error, 1)
	select {
	case a.cmds <- command{fn: fn, reply: reply}:
	case <-stop:
		return ErrNotRunning
	}
	select {
	case err := <-reply:
		return err
	case <-stop:
		return ErrNotRunning
	}
}

// publish copies the game state for readers. Loop goroutine only.
func (a *App) publish() {
	s := a.game.Snapshot()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snapVer > 0 && reflect.DeepEqual(s, a.snap) {
		return
	}
	a.snap = s
	a.snapVer++
}

func (a *App) setCameraFrame(jpeg []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camJPEG = jpeg
	a.camVer++
}

func (a *App) setGameFrame(jpeg []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gameJPEG = jpeg
	a.gameVer++
}

func (a *App) play(c sound.Cue) {
	if a.config.Sound != nil {
		a.config.Sound.Play(c)
	}
}
