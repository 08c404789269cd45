// Package main runs a fullscreen image slideshow with a date and time overlay
// using the Fyne framework.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/Akaiko1/laptop-slideshow/internal/config"
	"github.com/Akaiko1/laptop-slideshow/internal/renderer"
	"github.com/Akaiko1/laptop-slideshow/internal/scanner"
	"github.com/Akaiko1/laptop-slideshow/internal/slideshow"
	"github.com/Akaiko1/laptop-slideshow/internal/ui"
)

func checkErr(err error, msg string) {
	if err != nil {
		logrus.WithError(err).Fatal(msg)
	}
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	checkErr(err, "invalid configuration")
	checkErr(config.InitLogging(cfg.LogLevel), "invalid configuration")

	if cfg.NeedsPrompt() {
		checkErr(cfg.Prompt(os.Stdin, os.Stdout), "invalid input")
	}
	checkErr(cfg.Validate(), "invalid configuration")

	logrus.Info("Starting Laptop Slideshow...")
	logrus.Infof("Config: Dir=%s, FrameDelay=%ds, ShowSeconds=%v, SortFiles=%v",
		cfg.Dir, cfg.FrameDelay, cfg.ShowSeconds, cfg.SortFiles)

	result, err := scanner.NewImageScanner(cfg).Load(context.Background(), cfg.Dir)
	switch {
	case errors.Is(err, scanner.ErrEmptyDirectory):
		logrus.Fatalf("No .png, .jpg, .bmp or .gif files in %s, add some pictures and try again", cfg.Dir)
	case errors.Is(err, scanner.ErrNoReadableImages):
		logrus.WithError(err).Fatalf("None of the pictures in %s could be read", cfg.Dir)
	}
	checkErr(err, "failed to load images")

	cursor, err := slideshow.NewCursor(result.Images)
	checkErr(err, "failed to create slideshow")

	app := ui.NewSlideshowApp(cfg)
	show := slideshow.New(cursor, renderer.NewClockRenderer(cfg.ShowSeconds), app, cfg.FrameInterval())
	logrus.Info("App created, starting UI...")

	app.Run(show)
}
