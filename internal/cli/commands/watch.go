package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/cli/config"
	"github.com/armature-dev/armature/internal/cli/ui"
	"github.com/armature-dev/armature/internal/runner"
	"github.com/armature-dev/armature/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var (
		reload     bool
		reloadPort int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch declarations and regenerate on change",
		Long: `Watch the resources directory and rerun the generation pipeline for
every resource whose declaration changes. Each regeneration runs with
overwrite on, so edits propagate into existing artifacts.

With --reload, a WebSocket server broadcasts generation events and
serves a browser client at /reload.js; include it in your dev HTML:

  <script src="http://localhost:35729/reload.js"></script>

Examples:
  # Watch and regenerate
  armature watch

  # Watch with browser reload
  armature watch --reload

  # Reload on a custom port
  armature watch --reload --reload-port 4001
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.GetProjectRoot()
			if err != nil {
				return err
			}

			cfg, err := config.LoadFrom(root)
			if err != nil {
				return err
			}

			layout := cfg.Layout(root)
			if _, err := os.Stat(layout.ResourcesPath()); os.IsNotExist(err) {
				return fmt.Errorf("%s not found - run armature init first", layout.ResourcesDir)
			}

			port := 0
			if reload {
				port = reloadPort
			}

			session, err := watch.NewSession(watch.SessionConfig{
				Layout:     layout,
				Invoker:    &runner.SubprocessInvoker{Dir: root},
				ReloadPort: port,
			})
			if err != nil {
				return fmt.Errorf("failed to create watch session: %w", err)
			}

			if err := session.Start(); err != nil {
				return fmt.Errorf("failed to start watching: %w", err)
			}

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			// Display banner
			banner := color.New(color.FgCyan, color.Bold)

			fmt.Println()
			banner.Println("Armature watching for declaration changes")
			info := ui.NewKeyValueTable(os.Stdout, color.NoColor)
			info.AddRow("Project", filepath.Base(root))
			info.AddRow("Resources", layout.ResourcesDir)
			if port > 0 {
				info.AddRow("Reload", fmt.Sprintf("ws://localhost:%d/ws", port))
				info.AddRow("Client", fmt.Sprintf("http://localhost:%d/reload.js", port))
			}
			info.Render()
			fmt.Println()
			color.New(color.FgYellow).Println("Press Ctrl+C to stop")
			fmt.Println()

			// Block until signal
			<-sigChan

			fmt.Println("\n\nShutting down...")

			if err := session.Stop(); err != nil {
				return fmt.Errorf("error stopping watch session: %w", err)
			}

			color.New(color.FgGreen).Println("Goodbye!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reload, "reload", false, "Serve browser reload events over WebSocket")
	cmd.Flags().IntVar(&reloadPort, "reload-port", 35729, "Reload server port")

	return cmd
}
