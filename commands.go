package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/kr/pretty"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"go.creack.net/benglang/ast"
	"go.creack.net/benglang/config"
	"go.creack.net/benglang/diag"
	"go.creack.net/benglang/lexer"
	"go.creack.net/benglang/logs"
	"go.creack.net/benglang/parser"
)

type app struct {
	cfgFile  string
	logLevel string

	cfg     config.Config
	logger  *slog.Logger
	closeFn func() error
}

// run executes the command line args and releases the logger afterwards.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{}
	cmd := a.rootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if a.closeFn != nil {
		if closeErr := a.closeFn(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close log: %w", closeErr))
		}
	}
	return err
}

func (a *app) rootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "benglang",
		Short: "Scanner and parser for the benglang language",
		Long: `benglang turns source text into tokens and syntax trees.

Every command reads the file given as argument, or stdin when the argument
is missing or "-". Lexical and syntax errors are all reported before exiting
with status 65.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config")

	rootCmd.AddCommand(
		a.tokensCmd(),
		a.parseCmd(),
		a.fmtCmd(),
		a.checkCmd(),
	)
	return rootCmd
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, closeFn, err := logs.New(stderr, cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	a.cfg, a.logger, a.closeFn = cfg, logger, closeFn
	return nil
}

func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %q: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// report writes the diagnostics and turns them into an exit status.
func (a *app) report(cmd *cobra.Command, name string, h *diag.Handler) error {
	if !h.HadError() {
		return nil
	}
	if _, err := h.WriteTo(cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.logger.Info("source has errors", "source", name, "count", h.Count())
	return &exitError{code: exitDataErr, err: fmt.Errorf("%s: %w", name, h.Err())}
}

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			h := diag.NewHandler(a.logger)
			tokens := lexer.Scan(src, h)
			a.logger.Debug("scanned", "source", name, "tokens", len(tokens))

			w := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintln(w, tok)
			}
			return a.report(cmd, name, h)
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if style == "" {
				style = a.cfg.Dump.Style
			}
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			h := diag.NewHandler(a.logger)
			prog := parser.ParseSource(src, h)
			a.logger.Debug("parsed", "source", name, "statements", len(prog.Stmts))
			if err := a.report(cmd, name, h); err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), prog, style)
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "dump style: pretty, litter or source (default from config)")
	return cmd
}

func dump(w io.Writer, prog ast.Program, style string) error {
	switch style {
	case config.StylePretty:
		_, err := pretty.Fprintf(w, "%# v\n", prog)
		return err
	case config.StyleLitter:
		_, err := fmt.Fprintln(w, litter.Sdump(prog))
		return err
	case config.StyleSource:
		_, err := io.WriteString(w, prog.Dump())
		return err
	}
	return fmt.Errorf("unsupported dump style %q", style)
}

func (a *app) fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print the source in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			h := diag.NewHandler(a.logger)
			prog := parser.ParseSource(src, h)
			if err := a.report(cmd, name, h); err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), prog, config.StyleSource)
		},
	}
}

type checkResult struct {
	name string
	h    *diag.Handler
	err  error
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check file...",
		Short: "Report the errors of every file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]checkResult, len(args))

			// Source units are independent, each one gets its own handler.
			var wg sync.WaitGroup
			for i, file := range args {
				wg.Add(1)
				go func() {
					defer wg.Done()
					h := diag.NewHandler(a.logger)
					data, err := os.ReadFile(file)
					if err == nil {
						parser.ParseSource(string(data), h)
					}
					results[i] = checkResult{name: file, h: h, err: err}
				}()
			}
			wg.Wait()

			w := cmd.ErrOrStderr()
			failed := 0
			var readErrs []error
			for _, res := range results {
				if res.err != nil {
					readErrs = append(readErrs, fmt.Errorf("read %q: %w", res.name, res.err))
					continue
				}
				for _, d := range res.h.Diagnostics() {
					fmt.Fprintf(w, "%s: %s\n", res.name, d)
				}
				if res.h.HadError() {
					failed++
				}
			}
			if len(readErrs) > 0 {
				return errors.Join(readErrs...)
			}
			if failed > 0 {
				return &exitError{code: exitDataErr, err: fmt.Errorf("%d of %d files have errors", failed, len(args))}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d files ok\n", len(args))
			return nil
		},
	}
}
