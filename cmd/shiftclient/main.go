package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shiftkerja/shiftclient/app/client"
	"github.com/shiftkerja/shiftclient/core/config"
	"github.com/shiftkerja/shiftclient/core/logger"
)

var errQuit = errors.New("quit")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg client.Config
	config.MustLoad(&cfg) // panic on error

	// Logs go to stderr so they do not interleave with console output.
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
	)
	logger.SetAsDefault(log)

	app, err := client.NewApp(ctx, client.WithConfig(cfg), client.WithLogger(log))
	if err != nil {
		log.Error("Failed to create client", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start client", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for msg := range app.Connection().Messages(ctx) {
			fmt.Fprintf(os.Stdout, "<< %s\n", msg)
		}
		return nil
	})

	eg.Go(func() error {
		return console(ctx, app, os.Stdin, os.Stdout)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		log.Error("Console stopped", logger.Component("console"), logger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down cleanly", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Client stopped")
}

// console reads commands until quit, end of input or ctx cancellation.
// The reader goroutine is left blocked on stdin at exit.
func console(ctx context.Context, app *client.App, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprint(out, "> ")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return errQuit
			}
			quit, err := app.Exec(ctx, line, out)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return errQuit
			}
			fmt.Fprint(out, "> ")
		}
	}
}
