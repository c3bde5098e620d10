package main

import (
	"fmt"
	"os"

	"github.com/owendewing/Harmony/analyzer"
	"github.com/owendewing/Harmony/core"
	"github.com/owendewing/Harmony/generator"
	"github.com/owendewing/Harmony/optimizer"
	"github.com/owendewing/Harmony/syntax"
)

// analyzeProgram parses and analyzes src, returning the decorated AST.
func analyzeProgram(src string) (*core.Program, error) {
	m, err := syntax.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}
	program, err := analyzer.Analyze(m)
	if err != nil {
		return nil, fmt.Errorf("semantic error: %w", err)
	}
	return program, nil
}

// compileProgram runs the full pipeline and returns JavaScript source.
func compileProgram(src string, optimize, verbose bool) (string, error) {
	program, err := analyzeProgram(src)
	if err != nil {
		return "", err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "AST: %s\n", core.ToSExpr(program))
	}

	if optimize {
		program, err = optimizer.Optimize(program)
		if err != nil {
			return "", fmt.Errorf("optimizer error: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Optimized: %s\n", core.ToSExpr(program))
		}
	}

	return generator.Generate(program), nil
}
