// Command efuc is EFU's compiler driver: it lexes, parses, type-checks,
// and emits a source file in one of two backends. The command-line
// surface is explicitly out of the compiler core's scope (spec.md §1);
// this binary is the external collaborator that owns argument parsing
// and wires validated flags into internal/compiler.
package main

import (
	"fmt"
	"os"

	"github.com/efulang/efu/internal/ast"
	"github.com/efulang/efu/internal/compiler"
	"github.com/efulang/efu/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		targetFlag  string
		outFlag     string
		runFlag     bool
		runtimeFlag string
		debugIR     bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "efuc [FLAGS] <input-file>",
		Short: "Compile an EFU source file to its Go-like or JS-like target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return run(args[0], targetFlag, outFlag, runFlag, runtimeFlag, debugIR)
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().StringVarP(&targetFlag, "target", "t", "go", `backend: "go" or "js"`)
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "output path (a trailing / names a directory)")
	cmd.Flags().BoolVarP(&runFlag, "run", "r", false, "spawn the target toolchain after emission (out of core scope)")
	cmd.Flags().StringVar(&runtimeFlag, "runtime", "node", `dynamic-target host for -run: "node", "bun", or "deno"`)
	cmd.Flags().BoolVar(&debugIR, "debug-ir", false, "print the parsed AST's debug IR and skip emission")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace each pipeline stage to stderr")

	return cmd
}

func run(inputFile, targetFlag, outFlag string, runFlag bool, runtimeFlag string, debugIR bool) error {
	entry := logrus.NewEntry(log)

	src, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}

	if debugIR {
		nodes, diags := compiler.Parse(string(src), inputFile, entry)
		compiler.WriteDiagnostics(os.Stderr, compiler.Result{Diagnostics: diags.Diagnostics()})
		for _, n := range nodes {
			fmt.Println(ast.DebugIR(n))
		}
		if diags.HasErrors() {
			return fmt.Errorf("parse failed")
		}
		return nil
	}

	target, err := compiler.ParseTargetFlag(targetFlag)
	if err != nil {
		return err
	}

	runtime, err := config.ParseRuntimeFlag(runtimeFlag)
	if err != nil {
		return err
	}

	flags := config.Flags{
		InputFile: inputFile,
		Target:    target,
		OutPath:   config.ResolveOutputPath(outFlag, inputFile, target),
		Run:       runFlag,
		Runtime:   runtime,
		DebugIR:   debugIR,
	}

	result := compiler.Run(string(src), inputFile, flags.Target, entry)
	compiler.WriteDiagnostics(os.Stderr, result)
	if !result.OK {
		return fmt.Errorf("compilation failed")
	}

	if err := os.WriteFile(flags.OutPath, []byte(result.Output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flags.OutPath, err)
	}

	if flags.Run {
		// Spawning the target toolchain under flags.Runtime is out of core
		// scope per spec.md §1; record the request and stop here.
		entry.WithField("runtime", flags.Runtime).Info("efuc: -run requested but toolchain spawning is out of scope; skipping")
	}

	return nil
}
