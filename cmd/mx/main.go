// Package main is the main entrypoint to the mx application
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/tanema/mx"
	"github.com/tanema/mx/src/bytecode"
	"github.com/tanema/mx/src/conf"
	"github.com/tanema/mx/src/runtime"
	"github.com/tanema/mx/src/types"
)

var (
	vm          *runtime.VM
	cfg         *conf.Config
	globals     runtime.Vars
	logger      *slog.Logger
	listOpcodes bool
	parseOnly   bool
	showVersion bool
	executeStat string
	interactive bool
	outputPath  string
	configPath  string
	entryFn     string
)

func init() {
	flag.BoolVar(&listOpcodes, "l", false, "list instructions")
	flag.BoolVar(&parseOnly, "p", false, "assemble only")
	flag.BoolVar(&showVersion, "v", false, "show version information")
	flag.StringVar(&executeStat, "e", "", "execute listing 'stat'")
	flag.BoolVar(&interactive, "i", false, "enter interactive mode after executing a program")
	flag.StringVar(&outputPath, "o", "", "write the program image to `file`")
	flag.StringVar(&configPath, "c", "", "read configuration from `file` (default "+conf.CONFIGFILE+")")
	flag.StringVar(&entryFn, "fn", "", "call the function `name` after running, with the remaining args")
}

func main() {
	if os.Getenv("MX_PROFILE") != "" {
		defer runProfiling(os.Getenv("MX_PROFILE"))()
	}
	flag.Usage = printUsage
	flag.Parse()

	var err error
	if configPath != "" {
		cfg, err = conf.Load(configPath, false)
	} else {
		cfg, err = conf.Load(conf.CONFIGFILE, true)
	}
	checkErr(err)
	if entryFn == "" {
		entryFn = cfg.Entry
	}
	var closeLog func() error
	logger, closeLog, err = conf.NewLogger(cfg.Log, os.Stderr)
	checkErr(err)
	defer func() { _ = closeLog() }()
	globals, err = mx.Globals(cfg, os.Stdout)
	checkErr(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	vm = runtime.New(ctx, runtime.WithStepLimit(cfg.StepLimit), runtime.WithLogger(logger))

	args := flag.Args()
	if showVersion {
		printVersion()
	}
	if stat, _ := os.Stdin.Stat(); (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		checkErr(err)
		runSrc("<stdin>", strings.NewReader(string(data)), args)
	} else if executeStat != "" {
		runSrc("<string>", strings.NewReader(executeStat), args)
	} else if len(args) == 0 && !showVersion {
		runREPL()
	} else if len(args) > 0 {
		src, err := os.Open(args[0])
		checkErr(err)
		defer func() { _ = src.Close() }()
		runSrc(args[0], src, args[1:])
	} else if !showVersion {
		printUsage()
	}
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "%v\n", conf.FullVersion())
}

func printUsage() {
	printVersion()
	fmt.Fprint(os.Stderr, "\nUsage: mx [options] [program [args]]\n")
	flag.PrintDefaults()
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runSrc(path string, src io.ReadSeeker, args []string) {
	prog, err := mx.Load(path, src)
	checkErr(err)
	if listOpcodes {
		fmt.Fprint(os.Stderr, prog.String())
	}
	if outputPath != "" {
		checkErr(writeImage(prog, outputPath))
	}
	if !parseOnly {
		res, err := vm.Run(prog, globals)
		checkErr(err)
		if entryFn != "" {
			res, err = callEntry(prog, res, args)
			checkErr(err)
		}
		if !res.IsNil() {
			fmt.Fprintln(os.Stdout, res.GoString())
		}
	}
	if interactive {
		runREPL()
	}
}

func callEntry(prog *bytecode.Program, res types.Value, args []string) (types.Value, error) {
	fn, ok := mx.Export(res, globals, entryFn)
	if !ok {
		return types.NilValue(), fmt.Errorf("no function named %q", entryFn)
	}
	fnArgs := types.NewSizedTable(len(args))
	for i, arg := range args {
		fnArgs.Set(types.Num(i), mx.ParseArg(arg).Value())
	}
	logger.Debug("calling entry", "name", entryFn, "args", len(args))
	return vm.Call(prog, fn, fnArgs, globals)
}

func writeImage(prog *bytecode.Program, path string) error {
	data, err := prog.Dump()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func runREPL() {
	printVersion()
	fmt.Fprint(os.Stderr, "Enter instructions, an empty line runs them. Press ctrl-c to quit or clear the current buffer.\n")
	checkErr(vm.REPL(globals))
}

func runProfiling(filename string) func() {
	f, err := os.Create(filename)
	checkErr(err)
	checkErr(pprof.StartCPUProfile(f))
	return pprof.StopCPUProfile
}
