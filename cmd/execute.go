package cmd

import (
	"errors"
	"fmt"
	"nullgen/backend"
	"nullgen/config"
	"nullgen/demo"
	"nullgen/llvm"
	"nullgen/report"
	"os"
	"strings"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `nullgen` CLI utility.  It returns
// the process exit code.
func Execute() int {
	return execute(os.Args)
}

// execute runs the CLI with the command line args.
func execute(args []string) int {
	cli := olive.NewCLI("nullgen", "nullgen builds native code through LLVM and runs or links it", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	cli.AddStringArg("config", "c", "the path to the harness configuration file", false)

	execCmd := cli.AddSubcommand("exec", "JIT compile and run a program", true)
	execProgArg := execCmd.AddSelectorArg("program", "p", "the program to run", false, demo.Names())
	execProgArg.SetDefaultValue(demo.DefaultProgram)

	compileCmd := cli.AddSubcommand("compile", "compile a program to an object file and link it", true)
	compileProgArg := compileCmd.AddSelectorArg("program", "p", "the program to compile", false, demo.Names())
	compileProgArg.SetDefaultValue(demo.DefaultProgram)
	compileCmd.AddStringArg("output", "o", "the base name of the emitted object file", false)

	cli.AddSubcommand("stubs", "build the stub native libraries", false)
	cli.AddSubcommand("layout", "print the layouts of the ABI structs on the host", false)

	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.ReportError("CLI Usage Error", err)
		printUsage()
		return 0
	}

	subcmdName, subResult, ok := result.Subcommand()
	if !ok || subcmdName == "" {
		printUsage()
		return 0
	}

	configPath, _ := result.Arguments["config"].(string)
	cfg, err := config.Load(configPath)
	if err != nil {
		report.ReportError("Config Error", err)
		return 1
	}

	logLevel := cfg.LogLevel
	if lvl, ok := result.Arguments["loglevel"].(string); ok {
		logLevel = lvl
	}
	report.InitReporter(report.ParseLogLevel(logLevel))

	switch subcmdName {
	case "exec":
		program, _ := subResult.Arguments["program"].(string)
		report.ReportHeader("exec "+program, llvm.HostTriple())

		status, err := RunExec(cfg, program)
		return finish(err, status)
	case "compile":
		program, _ := subResult.Arguments["program"].(string)
		if output, ok := subResult.Arguments["output"].(string); ok {
			if err := cfg.SetOutputName(output); err != nil {
				report.ReportError("CLI Usage Error", err)
				return 1
			}
		}
		report.ReportHeader("compile "+program, llvm.HostTriple())

		return finish(RunCompile(cfg, program), 0)
	case "stubs":
		report.ReportHeader("stubs", llvm.HostTriple())
		return finish(RunStubs(cfg), 0)
	case "layout":
		return finish(RunLayout(cfg, os.Stdout), 0)
	default:
		printUsage()
		return 0
	}
}

// finish reports the outcome of a run and returns its exit code.  A program
// that ran but returned a non-zero status fails the run.
func finish(err error, status int) int {
	if err != nil {
		if errors.Is(err, backend.ErrNoTarget) {
			report.ReportFatal("%s", err)
		}

		report.ReportError(errorTag(err), err)
		report.ReportFinished(false)
		return 1
	}

	if status != 0 {
		report.ReportError("Program Error", fmt.Errorf("program exited with status %d", status))
		report.ReportFinished(false)
		return 1
	}

	report.ReportFinished(true)
	return 0
}

// errorTag returns the banner tag for err.
func errorTag(err error) string {
	var (
		verr *backend.VerifyError
		uerr *backend.UnresolvedSymbolsError
		eerr *backend.EngineError
		merr *backend.EmitError
		lerr *backend.LinkError
	)

	switch {
	case errors.As(err, &verr):
		return "Verify Error"
	case errors.As(err, &uerr):
		return "Symbol Error"
	case errors.As(err, &eerr):
		return "JIT Error"
	case errors.As(err, &merr):
		return "Emit Error"
	case errors.As(err, &lerr):
		return "Link Error"
	default:
		return "Error"
	}
}

// usage is the usage message of the CLI.
func usage() string {
	sb := strings.Builder{}
	sb.WriteString("usage: nullgen [-ll level] [-c config] <command> [options]\n\n")
	sb.WriteString("commands:\n")
	sb.WriteString("  exec [-p program]              JIT compile and run a program\n")
	sb.WriteString("  compile [-p program] [-o name] emit an object file and link it\n")
	sb.WriteString("  stubs                          build the stub native libraries\n")
	sb.WriteString("  layout                         print the ABI struct layouts\n\n")
	sb.WriteString("programs:\n")

	for _, name := range demo.Names() {
		prog, _ := demo.Lookup(name)
		fmt.Fprintf(&sb, "  %-12s %s\n", name, prog.Description)
	}

	return sb.String()
}

// printUsage prints the usage message.
func printUsage() {
	fmt.Print(usage())
}
