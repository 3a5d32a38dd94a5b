/*
Command nodetree-repl is an interactive shell for building and inspecting trees
of named nodes.

	nodetree-repl --trace debug --watch

Flags may also be set in a config file (--config) or by environment variables
prefixed NODETREE_, e.g. NODETREE_COLOR=true.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/nodetree/broadcast"
	"github.com/npillmayer/nodetree/render"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "nodetree-repl",
	Short:   "interactive shell for node trees",
	Args:    cobra.NoArgs,
	Example: `nodetree-repl --color --width 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupTracing(viper.GetString("trace"))
		config := render.ConfigFromTerminal()
		config.Color = viper.GetBool("color")
		if w := viper.GetInt("width"); w > 0 {
			config.Width = w
		}
		repl, err := NewREPL(cmd.OutOrStdout(), config)
		if err != nil {
			return err
		}
		if viper.GetBool("watch") {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if err := watch(ctx, repl); err != nil {
				return err
			}
		}
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if interactive {
			fmt.Fprintln(repl.out, "Nodetree REPL - Interactive Tree Demo")
			fmt.Fprintln(repl.out, "Type 'help' for available commands, 'quit' to exit")
			fmt.Fprintln(repl.out)
		}
		repl.Run(cmd.InOrStdin(), interactive)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags := rootCmd.Flags()
	flags.String("trace", "error", "trace level (error, info, debug)")
	flags.Bool("color", false, "color tree output by depth")
	flags.Int("width", 0, "maximum width of tree output, 0 for terminal width")
	flags.Bool("watch", false, "report structural changes on stderr")
	viper.SetEnvPrefix("nodetree")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// initConfig reads in the config file, if one is given.
func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot read config file: %v\n", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupTracing(level string) {
	gtrace.CoreTracer = gologadapter.New()
	switch strings.ToLower(level) {
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	default:
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
}

// watch prints structural changes of the session's forest to stderr.
func watch(ctx context.Context, repl *REPL) error {
	b := broadcast.New(ctx, repl.forest)
	events, err := b.Subscribe(ctx, 64)
	if err != nil {
		b.Close()
		return err
	}
	go func() {
		defer b.Close()
		for c := range events {
			fmt.Fprintf(os.Stderr, "~ %s %s (parent %s, was %s)\n", c.Op, c.Ref, c.Parent, c.From)
		}
	}()
	return nil
}
