// Command storyseq is a terminal editor for scene-grouped generative-AI
// prompt sequences.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/storyseq/storyseq"
	"github.com/storyseq/storyseq/bubbletea"
	"github.com/storyseq/storyseq/chroma"
	"github.com/storyseq/storyseq/clipboard"
	"github.com/storyseq/storyseq/fs"
	"github.com/storyseq/storyseq/gemini"
	"github.com/storyseq/storyseq/jsonl"
	"github.com/storyseq/storyseq/lipgloss"
	"github.com/storyseq/storyseq/sqlite"
	"github.com/storyseq/storyseq/worddiff"
	"github.com/storyseq/storyseq/zip"
)

// Flags holds global flag destinations shared across commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// App encapsulates the application logic for testing. Commands call its
// methods; main wires real adapters into it.
type App struct {
	Catalog     storyseq.CatalogStore
	Documents   storyseq.DocumentStore
	Transformer storyseq.Transformer
	Viewer      storyseq.Viewer
	Gallery     storyseq.Viewer
	Clipboard   storyseq.Clipboard
	Highlighter storyseq.Highlighter
	Stdout      io.Writer
}

// loadSequence reads a document into a fresh sequence. An empty path
// yields an empty sequence.
func (a *App) loadSequence(path string) (*storyseq.Sequence, error) {
	if path == "" {
		return storyseq.NewSequence(), nil
	}
	ingest, err := a.Documents.Load(path)
	if err != nil {
		return nil, err
	}
	return &storyseq.Sequence{
		SourcePrompts:  ingest.Prompts,
		SceneContexts:  ingest.SceneContexts,
		UsedCharacters: ingest.UsedCharacters,
		StyleOverride:  ingest.StyleOverride,
	}, nil
}

// Edit opens the interactive editor on the given document.
func (a *App) Edit(ctx context.Context, path string) error {
	seq, err := a.loadSequence(path)
	if err != nil {
		return err
	}
	session := storyseq.NewSession(seq)
	return a.Viewer.View(ctx, session)
}

// ViewGallery opens the output image gallery on the given document.
func (a *App) ViewGallery(ctx context.Context, path string) error {
	seq, err := a.loadSequence(path)
	if err != nil {
		return err
	}
	session := storyseq.NewSession(seq)
	return a.Gallery.View(ctx, session)
}

// CatalogList prints the saved sequences.
func (a *App) CatalogList(ctx context.Context) error {
	entries, err := a.Catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.Stdout, "catalog is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.Stdout, "%s\t%d frames\t%s\n",
			e.Name, e.Frames, e.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// CatalogSave stores a document's sequence under the given name.
func (a *App) CatalogSave(ctx context.Context, name, path string) error {
	seq, err := a.loadSequence(path)
	if err != nil {
		return err
	}
	if err := a.Catalog.Save(ctx, name, seq); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "saved %q (%d frames)\n", name, len(seq.SourcePrompts))
	return nil
}

// CatalogExport writes a saved sequence back out as an exchange document.
func (a *App) CatalogExport(ctx context.Context, name, out string) error {
	seq, err := a.Catalog.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := a.Documents.Save(out, storyseq.BuildExport(name, seq)); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "wrote %s\n", out)
	return nil
}

// CatalogDelete removes a saved sequence.
func (a *App) CatalogDelete(ctx context.Context, name string) error {
	if err := a.Catalog.Delete(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "deleted %q\n", name)
	return nil
}

// Export converts a document to the canonical exchange shape. The result
// goes to the out path, or to the clipboard when toClipboard is set.
// With preview, a highlighted rendering is printed to stdout instead.
func (a *App) Export(ctx context.Context, in, out string, toClipboard, preview bool) error {
	seq, err := a.loadSequence(in)
	if err != nil {
		return err
	}
	title := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	doc := storyseq.BuildExport(title, seq)

	switch {
	case preview:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		rendered, err := a.Highlighter.Highlight(string(data), "json")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Stdout, rendered)
		return nil

	case toClipboard:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		if err := a.Clipboard.Copy(string(data)); err != nil {
			return err
		}
		fmt.Fprintln(a.Stdout, "copied to clipboard")
		return nil

	default:
		if out == "" {
			return fmt.Errorf("no output path: pass one or use --clipboard")
		}
		if err := a.Documents.Save(out, doc); err != nil {
			return err
		}
		fmt.Fprintf(a.Stdout, "wrote %s\n", out)
		return nil
	}
}

// Transform runs the AI rewrite over a document's prompts and writes the
// sequence with the modified overlay attached. An empty out path prints
// to stdout.
func (a *App) Transform(ctx context.Context, in, out, instruction, style string) error {
	seq, err := a.loadSequence(in)
	if err != nil {
		return err
	}
	if len(seq.SourcePrompts) == 0 {
		return fmt.Errorf("%s has no prompts to transform", in)
	}
	if style == "" {
		style = seq.StyleOverride
	}

	res, err := a.Transformer.Transform(ctx, storyseq.TransformRequest{
		Prompts:        seq.SourcePrompts,
		SceneContexts:  seq.SceneContexts,
		UsedCharacters: seq.UsedCharacters,
		StyleOverride:  style,
		Instruction:    instruction,
	})
	if err != nil {
		return err
	}
	seq.ModifiedPrompts = res.Prompts
	seq.ModifiedSceneContexts = res.SceneContexts

	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Fprintln(a.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "wrote %s (%d modified prompts)\n", out, len(res.Prompts))
	return nil
}

func main() {
	ctx := context.Background()

	flags := &Flags{}
	app := &App{Stdout: os.Stdout}

	var (
		cfg         *Config
		sqliteStore *sqlite.Store
	)

	cmd := &cli.Command{
		Name:      "storyseq",
		Usage:     "Edit scene-grouped AI prompt sequences in the terminal",
		UsageText: "storyseq [global options] command [command options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("STORYSEQ_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/storyseq.log)",
				Sources:     cli.EnvVars("STORYSEQ_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("STORYSEQ_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("STORYSEQ_DATA_DIR"),
				Value:       fs.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The TUI owns the terminal; logs always go to a file.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "storyseq.log")
			}
			logger, err := newLogger(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger

			cfg, err = LoadConfig(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, err
			}

			switch cfg.Catalog.Backend {
			case BackendSQLite:
				sqliteStore, err = sqlite.Open(cfg.Catalog.Path)
				if err != nil {
					return ctx, fmt.Errorf("open catalog: %w", err)
				}
				app.Catalog = sqliteStore
			default:
				app.Catalog = jsonl.NewStore(cfg.Catalog.Path)
			}

			app.Documents, err = fs.NewDocumentStore()
			if err != nil {
				return ctx, err
			}
			app.Clipboard = clipboard.NewSystem()
			app.Highlighter = chroma.NewHighlighter()

			theme := lipgloss.DarkTheme()
			if cfg.Theme == "light" {
				theme = lipgloss.LightTheme()
			}
			app.Viewer = bubbletea.NewViewer(bubbletea.WithModelOptions(
				bubbletea.WithEditorTheme(theme),
				bubbletea.WithEditorWordDiffer(worddiff.NewDiffer()),
				bubbletea.WithEditorHighlighter(app.Highlighter),
				bubbletea.WithEditorClipboard(app.Clipboard),
			))

			cache := fs.NewImageCache(cfg.CacheDir)
			archiver := zip.NewArchiver(zip.FromCache(cache))
			zipDest := filepath.Join(flags.DataDir, "export.zip")
			app.Gallery = bubbletea.NewGalleryViewer(bubbletea.WithGalleryModelOptions(
				bubbletea.WithGalleryTheme(theme),
				bubbletea.WithGalleryZip(func(ctx context.Context, frames []int) error {
					return archiver.Archive(ctx, zipDest, frames)
				}),
			))

			log.Debug().
				Str("catalog", cfg.Catalog.Backend).
				Str("data_dir", flags.DataDir).
				Msg("configured")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if sqliteStore != nil {
				return sqliteStore.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "edit",
				Usage:     "Open the interactive editor",
				ArgsUsage: "[file]",
				Action: func(ctx context.Context, c *cli.Command) error {
					return app.Edit(ctx, c.Args().First())
				},
			},
			{
				Name:      "gallery",
				Usage:     "Open the output image gallery",
				ArgsUsage: "[file]",
				Action: func(ctx context.Context, c *cli.Command) error {
					return app.ViewGallery(ctx, c.Args().First())
				},
			},
			{
				Name:  "catalog",
				Usage: "Manage the saved-sequence catalog",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List saved sequences",
						Action: func(ctx context.Context, c *cli.Command) error {
							return app.CatalogList(ctx)
						},
					},
					{
						Name:      "save",
						Usage:     "Save a document's sequence under a name",
						ArgsUsage: "<name> <file>",
						Action: func(ctx context.Context, c *cli.Command) error {
							if c.Args().Len() < 2 {
								return fmt.Errorf("usage: storyseq catalog save <name> <file>")
							}
							return app.CatalogSave(ctx, c.Args().Get(0), c.Args().Get(1))
						},
					},
					{
						Name:      "export",
						Usage:     "Write a saved sequence as an exchange document",
						ArgsUsage: "<name> <file>",
						Action: func(ctx context.Context, c *cli.Command) error {
							if c.Args().Len() < 2 {
								return fmt.Errorf("usage: storyseq catalog export <name> <file>")
							}
							return app.CatalogExport(ctx, c.Args().Get(0), c.Args().Get(1))
						},
					},
					{
						Name:      "delete",
						Usage:     "Remove a saved sequence",
						ArgsUsage: "<name>",
						Action: func(ctx context.Context, c *cli.Command) error {
							if c.Args().Len() < 1 {
								return fmt.Errorf("usage: storyseq catalog delete <name>")
							}
							return app.CatalogDelete(ctx, c.Args().First())
						},
					},
				},
			},
			{
				Name:      "export",
				Usage:     "Convert a document to the canonical exchange shape",
				ArgsUsage: "<in> [out]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "clipboard", Usage: "copy the document to the clipboard"},
					&cli.BoolFlag{Name: "preview", Usage: "print a highlighted preview instead of writing"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() < 1 {
						return fmt.Errorf("usage: storyseq export <in> [out]")
					}
					return app.Export(ctx, c.Args().Get(0), c.Args().Get(1),
						c.Bool("clipboard"), c.Bool("preview"))
				},
			},
			{
				Name:      "transform",
				Usage:     "Run the AI rewrite over a document's prompts",
				ArgsUsage: "<in>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (defaults to stdout)"},
					&cli.StringFlag{Name: "instruction", Aliases: []string{"i"}, Usage: "rewrite instruction"},
					&cli.StringFlag{Name: "style", Usage: "style override"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() < 1 {
						return fmt.Errorf("usage: storyseq transform <in>")
					}
					if app.Transformer == nil {
						apiKey := os.Getenv("GEMINI_API_KEY")
						if apiKey == "" {
							return fmt.Errorf("GEMINI_API_KEY is not set")
						}
						client, err := gemini.NewClient(ctx, apiKey)
						if err != nil {
							return err
						}
						var topts []gemini.TransformerOption
						if cfg.Model != "" {
							topts = append(topts, gemini.WithModel(cfg.Model))
						}
						app.Transformer = gemini.NewTransformer(client, topts...)
					}
					instruction := c.String("instruction")
					if instruction == "" {
						instruction = cfg.Instruction
					}
					style := c.String("style")
					if style == "" {
						style = cfg.Style
					}
					return app.Transform(ctx, c.Args().First(), c.String("out"), instruction, style)
				},
			},
		},
		// Bare invocation opens the editor on an empty sequence.
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'storyseq --help' for usage", c.Args().First())
			}
			return app.Edit(ctx, "")
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
