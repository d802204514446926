// Command btinspect is a terminal developer tool for exercising a behavior
// tree catalog and editor outside of any host application: place nodes,
// wire connections, step ticks, and watch the tree render live. It is not
// the graphical editor the core spec describes — no mouse, no drag-and-drop,
// no port discs — just enough of a harness to watch EditorState behave.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var catalogPath string

var tracerCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "btinspect",
	Short: "Interactive inspector for a bt.EditorState",
	Long: `btinspect loads a catalog bootstrap file and opens a terminal UI for
placing, connecting, and ticking behavior tree nodes against the bt package.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := setupTracer(zipkinEndpoint)
		if err != nil {
			return err
		}
		tracerCloser = closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return tracerCloser.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "catalog.toml", "path to the catalog bootstrap TOML file")
	rootCmd.PersistentFlags().StringVar(&zipkinEndpoint, "zipkin-endpoint", "", "zipkin HTTP collector URL to report bt spans to (e.g. http://localhost:9411/api/v2/spans); unset disables tracing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
