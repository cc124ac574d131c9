package cmd

import (
	"context"

	"github.com/ComedicChimera/olive"
	"tlog.app/go/tlog"

	"mkc/build"
	"mkc/common"
	"mkc/report"
)

// Execute runs the `mkc` application on a command line and returns the exit
// status of the process.
func Execute(args []string) int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("mkc", "mkc compiles recorded MK programs to LLVM IR", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a construct trace", true)
	buildCmd.AddPrimaryArg("trace-path", "the path to the trace to compile", true)
	buildCmd.AddStringArg("output", "o", "the path to write the program to", false)
	buildCmd.AddStringArg("config", "c", "the path to the runtime configuration", false)

	cli.AddSubcommand("version", "print the mkc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	loglevel := result.Arguments["loglevel"].(string)
	report.InitReporter(report.LogLevelNames[loglevel])

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult, loglevel)
	case "version":
		report.PrintInfoMessage("MK Version", common.MKVersion)
	}

	return 0
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) int {
	tracePath, _ := result.PrimaryArg()

	opts := build.Options{TracePath: tracePath}
	if outArg, ok := result.Arguments["output"]; ok {
		opts.OutputPath = outArg.(string)
	}

	if cfgArg, ok := result.Arguments["config"]; ok {
		opts.ConfigPath = cfgArg.(string)
	}

	// phase tracing is only displayed at the verbose log level
	ctx := context.Background()
	if loglevel == "verbose" {
		ctx = tlog.ContextWithSpan(ctx, tlog.Root())
	}

	if err := build.Build(ctx, opts, stdout); err != nil {
		report.ReportError(err)
		return 1
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = "standard out"
	}

	report.ReportCompilationFinished(outputPath)
	return 0
}
