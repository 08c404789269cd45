package ui

import (
	"context"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"github.com/sirupsen/logrus"

	"github.com/Akaiko1/laptop-slideshow/internal/config"
	"github.com/Akaiko1/laptop-slideshow/internal/slideshow"
)

const (
	// UI Constants
	appID        = "io.github.akaiko1.laptopslideshow"
	appTitle     = "Laptop Slideshow"
	windowWidth  = 1920
	windowHeight = 1080
)

var _ slideshow.Display = (*SlideshowApp)(nil)

// displayState is what is currently on screen.
type displayState struct {
	image    image.Image
	timeText string
	dateText string
}

// SlideshowApp is a fullscreen window showing one image with a clock overlay.
type SlideshowApp struct {
	// Core components
	app    fyne.App
	window fyne.Window
	config *config.Config

	// UI components
	background *canvas.Image
	timeText   *canvas.Text
	dateText   *canvas.Text

	// State, only touched on the UI goroutine
	state displayState

	show       *slideshow.Slideshow
	quit       func()
	cancelFunc context.CancelFunc
}

// NewSlideshowApp creates a SlideshowApp with the given configuration.
func NewSlideshowApp(cfg *config.Config) *SlideshowApp {
	return newSlideshowApp(app.NewWithID(appID), cfg)
}

func newSlideshowApp(fyneApp fyne.App, cfg *config.Config) *SlideshowApp {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	window := fyneApp.NewWindow(appTitle)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.SetPadded(false)
	window.SetFullScreen(true)

	a := &SlideshowApp{
		app:    fyneApp,
		window: window,
		config: cfg,
		quit:   fyneApp.Quit,
	}
	a.window.SetContent(a.createMainContent())
	a.window.Canvas().SetOnTypedKey(a.handleKey)
	return a
}

// Run shows the window and blocks until the application quits. The slideshow is
// started once the UI loop is up and stopped when it shuts down.
func (a *SlideshowApp) Run(show *slideshow.Slideshow) {
	a.show = show

	lifecycle := a.app.Lifecycle()
	lifecycle.SetOnStarted(a.start)
	lifecycle.SetOnStopped(a.stop)

	a.window.ShowAndRun()
}

func (a *SlideshowApp) start() {
	if a.show == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelFunc = cancel

	a.show.ShowCurrent()
	if err := a.show.Run(ctx); err != nil {
		logrus.WithError(err).Error("failed to start slideshow")
		a.quit()
	}
}

func (a *SlideshowApp) stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	if a.show != nil {
		a.show.Stop()
	}
	logrus.Info("slideshow stopped")
}

// createMainContent stacks the image over a black background and anchors the
// clock to the bottom-left corner.
func (a *SlideshowApp) createMainContent() fyne.CanvasObject {
	backdrop := canvas.NewRectangle(color.Black)

	a.background = canvas.NewImageFromImage(nil)
	a.background.FillMode = canvas.ImageFillContain
	a.background.ScaleMode = canvas.ImageScaleSmooth

	a.timeText = a.newOverlayText()
	a.dateText = a.newOverlayText()

	margin := a.config.Margin
	clock := container.New(
		layout.NewCustomPaddedLayout(margin, margin, margin, margin),
		container.NewVBox(a.timeText, a.dateText),
	)
	overlay := container.NewBorder(nil, container.NewHBox(clock, layout.NewSpacer()), nil, nil)

	return container.NewStack(backdrop, a.background, overlay)
}

func (a *SlideshowApp) newOverlayText() *canvas.Text {
	text := canvas.NewText("", color.White)
	text.TextSize = a.config.FontSize
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.Alignment = fyne.TextAlignLeading
	return text
}

// ShowImage implements slideshow.Display.
func (a *SlideshowApp) ShowImage(img image.Image) {
	fyne.Do(func() {
		a.setImage(img)
	})
}

// ShowClock implements slideshow.Display.
func (a *SlideshowApp) ShowClock(timeText, dateText string) {
	fyne.Do(func() {
		a.setClock(timeText, dateText)
	})
}

func (a *SlideshowApp) setImage(img image.Image) {
	a.state.image = img
	a.background.Image = img
	a.background.Refresh()
}

func (a *SlideshowApp) setClock(timeText, dateText string) {
	if timeText == a.state.timeText && dateText == a.state.dateText {
		return
	}
	a.state.timeText = timeText
	a.state.dateText = dateText

	a.timeText.Text = timeText
	a.dateText.Text = dateText
	a.timeText.Refresh()
	a.dateText.Refresh()
}

// handleKey quits on Escape or Q, the only way out of a borderless fullscreen window.
func (a *SlideshowApp) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape, fyne.KeyQ:
		logrus.WithField("key", ev.Name).Debug("quit requested")
		a.quit()
	}
}
