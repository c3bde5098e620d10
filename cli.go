package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/owendewing/Harmony/core"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `Harmony - A music-flavoured language that compiles to JavaScript

Usage:
    harmony <command> [arguments]

Commands:
    run <file>      Compile a .hmy file and execute it with node
    build <file>    Compile a .hmy file to JavaScript
    eval <code>     Compile inline Harmony code and print the JavaScript
    check <file>    Parse and type-check a .hmy file
    repl            Start an interactive session
    help            Show this help message

Examples:
    harmony run examples/scales.hmy
    harmony build -o program.js song.hmy
    harmony eval 'play(8 ** 5);'
    harmony check myfile.hmy

Use "harmony <command> -h" for more information about a command.
`)
}

func readSource(filename string) string {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(sourceBytes)
}

func requireOneArg(fs *flag.FlagSet, what string) string {
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one %s argument\n", what)
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harmony run [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .hmy file and execute it with node\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	filename := requireOneArg(fs, "file")

	if *verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	js, err := compileProgram(readSource(filename), true, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Generated %d bytes of JavaScript\n", len(js))
		fmt.Fprintf(os.Stderr, "Executing...\n")
	}

	if err := runJS(js, executeJSFile); err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}
}

// runJS writes js to a temporary file, hands it to execute and removes the
// file again whether or not execution succeeds.
func runJS(js string, execute func(jsFile string) error) error {
	tempJS, err := os.CreateTemp("", "harmony-*.js")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tempJS.Name())

	_, err = tempJS.WriteString(js + "\n")
	if cerr := tempJS.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing JavaScript file: %w", err)
	}

	if err := execute(tempJS.Name()); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.js)")
	optimize := fs.Bool("O", true, "Run constant folding and dead-code elimination")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harmony build [-o output] [-O=false] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .hmy file to JavaScript\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	filename := requireOneArg(fs, "file")

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".hmy") + ".js"
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s to %s...\n", filename, outputFile)
	}

	js, err := compileProgram(readSource(filename), *optimize, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, []byte(js+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JavaScript file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(js)+1)
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	optimize := fs.Bool("O", true, "Run constant folding and dead-code elimination")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harmony eval [-O=false] [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Compile inline Harmony code and print the JavaScript\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	code := requireOneArg(fs, "code")

	if *verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s\n", code)
	}

	js, err := compileProgram(code, *optimize, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
	if js != "" {
		fmt.Println(js)
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Print the decorated AST")
	dump := fs.Bool("dump", false, "With -v, also print a Go structure dump of the AST")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harmony check [-v] [-dump] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and type-check a .hmy file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	filename := requireOneArg(fs, "file")

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	program, err := analyzeProgram(readSource(filename))
	if err != nil {
		fmt.Printf("%s: %v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", core.ToSExpr(program))
		if *dump {
			spew.Config.DisablePointerAddresses = true
			spew.Dump(program)
		}
	}
}

func replCommand(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	optimize := fs.Bool("O", true, "Run constant folding and dead-code elimination")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harmony repl [-O=false]\n")
		fmt.Fprintf(os.Stderr, "Start an interactive session that prints generated JavaScript\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	os.Exit(runRepl(*optimize))
}

// executeJSFile runs a generated program with node from PATH.
func executeJSFile(jsFile string) error {
	node, err := exec.LookPath("node")
	if err != nil {
		return fmt.Errorf("node not found in PATH: %w", err)
	}

	cmd := exec.Command(node, jsFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
