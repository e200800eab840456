// Root command for the shelf CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/internal/logging"
	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/internal/render"
	"github.com/mesh-intelligence/shelf/internal/sqlite"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries global flag values and the resources opened for one invocation.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagLogLevel  string

	out    io.Writer
	errOut io.Writer

	cfg      *viper.Viper
	logger   *zap.Logger
	renderer *render.Renderer
	backend  *sqlite.Backend
	store    *catalog.Store
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{out: stdout, errOut: stderr, logger: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shelf",
		Short:         "Shelf is a personal library catalog",
		Long:          "Shelf keeps track of the books you own: add, edit, search, sort, lend them out, and export a backup.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newSortCmd(a),
		newCheckoutCmd(a),
		newCheckinCmd(a),
		newCheckoutsCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
	)
	return root
}

// setup loads .env and config.yaml, then builds the logger and renderer.
func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return sysError(fmt.Errorf("load .env: %w", err))
	}

	configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.cfg = cfg

	level := cfg.GetString(cfgKeyLogLevel)
	if cmd.Flags().Changed("log-level") {
		level = a.flagLogLevel
	}
	logger, err := logging.New(level, cfg.GetString(cfgKeyLogMode))
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	a.logger = logger.Named("shelf")
	a.renderer = render.New(a.colorEnabled())

	a.logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("command", cmd.Name()))
	return nil
}

// colorEnabled reports whether human output may carry ANSI styling.
func (a *app) colorEnabled() bool {
	if a.flagJSON || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := a.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// close detaches the backend and flushes the logger.
func (a *app) close() error {
	var err error
	if a.backend != nil {
		err = a.backend.Detach()
		a.backend = nil
		a.store = nil
	}
	_ = a.logger.Sync()
	return err
}
