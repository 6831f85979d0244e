package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/notatnik/internal"
	"github.com/starford/notatnik/internal/mcpserver"
	"github.com/starford/notatnik/internal/noteservice"
	"github.com/starford/notatnik/internal/notestore"
	"github.com/starford/notatnik/internal/watch"
	pkgconfig "github.com/starford/notatnik/pkg/config"
)

func addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Append a note",
		ArgsUsage: "<text...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("add: note text is required (use \"\" for an empty note)")
			}
			svc, err := openService(cmd)
			if err != nil {
				return err
			}
			return svc.Add(strings.Join(cmd.Args().Slice(), " "))
		},
	}
}

func removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove the note at a zero-based index",
		ArgsUsage: "<index>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("remove: exactly one index is required")
			}
			index, err := noteservice.ParseIndex(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			svc, err := openService(cmd)
			if err != nil {
				return err
			}
			_, err = svc.Remove(index)
			return err
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Display all notes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := openService(cmd)
			if err != nil {
				return err
			}
			return svc.Display()
		},
	}
}

func shellCmd() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive menu",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := openService(cmd)
			if err != nil {
				return err
			}
			return runShell(ctx, stdin(cmd), stdout(cmd), svc)
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Display notes and redisplay them whenever the file changes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			out := stdout(cmd)
			first := true
			return watch.Watch(ctx, cfg.Notes.Path, logger, func(notes []string) {
				if !first {
					_, _ = fmt.Fprintln(out)
				}
				first = false
				_ = noteservice.Display(out, notes)
			})
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the notes over an HTTP JSON API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the notes as MCP tools over stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			store, err := notestore.Open(cfg.Notes.Path, notestore.WithLogger(logger))
			if err != nil {
				return err
			}
			return mcpserver.New(store, logger, version).ServeStdio()
		},
	}
}

// loadConfig reads the config file (if any) and applies the --file override.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// The flag wins over the file.
	if p := cmd.String("file"); p != "" {
		cfg.Notes.Path = p
	}
	return cfg, nil
}

// setup loads config and builds a stderr logger, keeping stdout for notes.
func setup(cmd *cli.Command) (*internal.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(stderr(cmd), &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	logger.Debug("Configuration loaded",
		slog.String("notes_path", cfg.Notes.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))
	return cfg, logger, nil
}

func openService(cmd *cli.Command) (*noteservice.Service, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	store, err := notestore.Open(cfg.Notes.Path, notestore.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return noteservice.NewService(store, stdout(cmd), logger), nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
