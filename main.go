package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/dsl"
	"github.com/ByLCY/rosterboard/editor"
	"github.com/ByLCY/rosterboard/layout"
	"github.com/ByLCY/rosterboard/renderer"
	canvasrenderer "github.com/ByLCY/rosterboard/renderer/canvas"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli 保存所有子命令共享的参数与日志器。
type cli struct {
	verbose    bool
	dataPath   string
	configPath string
	outDir     string
	logger     *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: newLogger(os.Stderr, log.InfoLevel)}
	root := &cobra.Command{
		Use:          "rosterboard",
		Short:        "Rearrange and restyle roster blocks, then export them as PNG",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.dataPath, "data", "", "JSON file bound to ${...} placeholders")
	flags.StringVar(&c.configPath, "config", "", "TOML settings file")
	flags.StringVarP(&c.outDir, "out", "o", ".", "directory downloads are written to")

	root.AddCommand(c.newExportCmd(), c.newPlayCmd(), c.newWatchCmd())
	return root
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func (c *cli) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <surface>",
		Short: "Export a surface as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(args[0])
			if err != nil {
				return err
			}
			return app.Export(cmd.Context())
		},
	}
}

func (c *cli) newPlayCmd() *cobra.Command {
	var debugPath string
	cmd := &cobra.Command{
		Use:   "play <surface> <script>",
		Short: "Replay a pointer session against a surface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.play(cmd.Context(), args[0], args[1], debugPath)
		},
	}
	cmd.Flags().StringVar(&debugPath, "debug", "", "write the final surface state as JSON")
	return cmd
}

// play 串联解析、构建与回放。
func (c *cli) play(ctx context.Context, surfacePath, scriptPath, debugPath string) error {
	app, err := c.open(surfacePath)
	if err != nil {
		return err
	}
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("无法打开脚本 %s: %w", scriptPath, err)
	}
	defer f.Close()
	script, err := dsl.ParseScript(f)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}
	if err := app.Play(ctx, script); err != nil {
		return fmt.Errorf("回放 %s 失败: %w", scriptPath, err)
	}
	c.logger.Info("session replayed", "script", scriptPath, "blocks", len(app.Surface().Blocks))
	if debugPath != "" {
		if err := layout.WriteDebugJSON(app.Surface(), debugPath); err != nil {
			return err
		}
		c.logger.Debug("wrote debug state", "path", debugPath)
	}
	return nil
}

// open builds the editor for a surface file.
func (c *cli) open(surfacePath string) (*editor.App, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	data, err := loadData(c.dataPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(surfacePath)
	if err != nil {
		return nil, fmt.Errorf("无法打开 surface 文件 %s: %w", surfacePath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 surface 失败: %w", err)
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: filepath.Dir(surfacePath),
		Logger:  c.logger,
	})
	s, err := layout.Build(doc, layout.BuildOptions{Typesetter: r, Data: data})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return editor.New(s, cfg, editor.Deps{
		Renderer:   r,
		Notifier:   stderrNotifier{w: os.Stderr},
		Downloader: dirDownloader{dir: c.outDir, logger: c.logger},
		Logger:     c.logger,
	})
}

func loadData(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 data 文件失败: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

// stderrNotifier stands in for a blocking alert.
type stderrNotifier struct{ w io.Writer }

func (n stderrNotifier) Notify(message string) { fmt.Fprintln(n.w, message) }

// dirDownloader writes data-URL images into a directory.
type dirDownloader struct {
	dir    string
	logger *log.Logger
}

func (d dirDownloader) Download(filename, dataURL string) error {
	mediaType, data, err := renderer.DecodeDataURL(dataURL)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	path := filepath.Join(d.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	d.logger.Info("downloaded", "path", path, "type", mediaType, "bytes", len(data))
	return nil
}
