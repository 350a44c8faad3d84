package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/go-docrst/autodoc"
)

const rootLongDesc = `
go-docrst writes reStructuredText API documentation for a Go package tree.
Every exported function, type, constant and variable is documented in source
order using Sphinx's Python domain directives, and nested packages follow as
their own sections once the parent's members are done. Types are documented as
classes: a New<Type> constructor supplies the signature and initializer docs,
and documented methods are listed by name.

Modules dumped by other introspectors can be documented from a YAML or JSON
manifest with --manifest. The CLI also ships:

  • Shell completion generation for bash, zsh, fish, and PowerShell
  • A gen-docs helper that can emit Markdown reference docs for the CLI itself
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "go-docrst [flags] [package]",
		Short:         "Render Go package documentation as reStructuredText",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.BoolVar(&app.opts.showCmd, "cmd", false, "document package main packages")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write output RST to file instead of stdout")
	flags.StringVar(&app.opts.title, "title", "", "write a document title before the first module section")
	flags.StringVar(&app.opts.preambleFile, "preamble-file", "", "write the contents of this file before the first module section")
	flags.StringVar(&app.opts.lang, "lang", autodoc.DefaultLang, "language tag for code-block directives")
	flags.StringVar(&app.opts.manifestPath, "manifest", "", "document a YAML or JSON module manifest instead of Go packages")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for go-docrst.

The output should be evaluated by your shell. For example:

  # bash
  go-docrst completion bash > /usr/local/etc/bash_completion.d/go-docrst

  # zsh
  go-docrst completion zsh > "${fpath[1]}/_go-docrst"

  # fish
  go-docrst completion fish | source

  # PowerShell
  go-docrst completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-docrst gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
