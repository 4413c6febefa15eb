package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"runlike/internal/app"
	"runlike/internal/config"
	rlerrors "runlike/internal/errors"
	"runlike/internal/translator"
	"runlike/internal/ui"
	"runlike/pkg/runtime"
)

// version is set at build time via ldflags
var version = "dev"

// inspectorProvider builds the inspector for a resolved configuration.
type inspectorProvider func(ctx context.Context, cfg *config.Config) (runtime.Inspector, error)

func newRootCmd(getInspector inspectorProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runlike [flags] CONTAINER",
		Short:   "Print the docker run command that recreates a container",
		Version: version,
		Long: `runlike inspects an existing container and prints a docker run command
that would start a new container configured the same way: name, environment,
volumes, ports, links, detach and tty settings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], getInspector)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("no-name", "n", false, "Do not include the container name")
	flags.BoolP("pretty", "p", false, "Break the command over several lines")
	flags.BoolP("interactive-tty", "i", false, "Omit --detach=true so the container runs in the foreground")
	flags.StringArrayP("extra-opts", "e", nil, "Extra option to insert after the name, verbatim (repeatable)")
	flags.String("engine", config.EngineCLI, "How to inspect the container: cli or api")
	flags.String("docker-command", "docker", "Program used by the cli engine, e.g. \"sudo docker\"")
	flags.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/runlike/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, container string, getInspector inspectorProvider) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}

	rlerrors.SetLogOptions(cfg.Log.Options())
	if handler, err := rlerrors.GetDefaultHandler(); err == nil {
		slog.SetDefault(handler.Logger())
	}

	noName, _ := flags.GetBool("no-name")
	interactive, _ := flags.GetBool("interactive-tty")
	extraOpts, _ := flags.GetStringArray("extra-opts")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	inspector, err := getInspector(ctx, cfg)
	if err != nil {
		return err
	}
	if closer, ok := inspector.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Warn("Failed to close inspector", "error", err)
			}
		}()
	}

	result, err := app.NewRunner(inspector).Run(ctx, app.Options{
		Container: container,
		Translate: translator.Options{
			NoName:         noName,
			ExtraOptions:   extraOpts,
			InteractiveTTY: interactive,
		},
		Pretty: cfg.Pretty,
	})
	if err != nil {
		return err
	}

	ui.NewConsoleWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), false).PrintResult(result)
	return nil
}

func main() {
	rootCmd := newRootCmd(app.NewInspectorFactory().GetInspector)
	if err := rootCmd.Execute(); err != nil {
		rlerrors.HandleError(err)
		os.Exit(1)
	}
}
