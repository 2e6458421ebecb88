package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const usageLine = "Usage: subclean <input.srt> <output.srt>"

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &cleanFlags{}

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "subclean <input.srt> <output.srt>",
		Short:         "Remove rolling duplicate lines from SRT subtitles",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          requireInputOutput,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, ctx, flags, args[0], args[1])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.register(rootCmd)

	// Positional words are input paths first; only --help stays reserved.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Use: "__help", Hidden: true})

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}

func requireInputOutput(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), usageLine)
	return reportedError{err: fmt.Errorf("expected 2 arguments, got %d", len(args))}
}

// preferInputFiles detaches the subcommands when the word that would select
// one is also the name of an existing file, so `subclean config out.srt`
// cleans ./config instead of running the config command.
func preferInputFiles(rootCmd *cobra.Command, args []string) {
	target, _, err := rootCmd.Find(args)
	if err != nil || target == rootCmd {
		return
	}
	top := target
	for top.HasParent() && top.Parent() != rootCmd {
		top = top.Parent()
	}
	for _, arg := range args {
		if arg != top.Name() && !top.HasAlias(arg) {
			continue
		}
		if info, statErr := os.Stat(arg); statErr == nil && info.Mode().IsRegular() {
			rootCmd.ResetCommands()
		}
		return
	}
}
