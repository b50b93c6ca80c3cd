package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/protogen-lang/protogen/compiler/codegen"
	"github.com/protogen-lang/protogen/compiler/errors"
	"github.com/protogen-lang/protogen/compiler/lexer"
	"github.com/protogen-lang/protogen/compiler/parser"
	"github.com/protogen-lang/protogen/compiler/resolver"
	"github.com/protogen-lang/protogen/internal/cli/config"
)

var (
	compileJSON    bool
	compileVerbose bool
)

// diagnosticError marks an error whose diagnostic line was already
// written to standard error.
type diagnosticError struct {
	err *errors.CompilerError
}

func (e *diagnosticError) Error() string { return e.err.Error() }

func isDiagnostic(err error) bool {
	_, ok := err.(*diagnosticError)
	return ok
}

// NewCompileCommand creates the compile command
func NewCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <schema-file> [<output-file>]",
		Short: "Compile a proto3 schema into a Go JSON codec",
		Long: `Compile a proto3 schema file and write the generated Go source.

The pipeline:
  1. Lexical analysis - tokenize the schema
  2. Parsing - build the message AST
  3. Resolution - bind references and order messages
  4. Code generation - produce the Go codec

With no output file, the generated source is written to the
emit.output path of protogen.yml, or to standard output when that is
unset.`,
		Example: `  # Compile to stdout
  protogen compile api.proto

  # Compile to a file
  protogen compile api.proto api.pb.json.go

  # Show each compilation stage
  protogen compile --verbose api.proto`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCompile,
	}

	cmd.Flags().BoolVar(&compileJSON, "json", false, "Output errors in JSON format")
	cmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "Show detailed compilation output")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	schemaPath := args[0]

	logger := zap.NewNop()
	if compileVerbose {
		dev, err := zap.NewDevelopment()
		if err == nil {
			logger = dev
		}
	}
	defer logger.Sync() //nolint:errcheck

	warningColor := color.New(color.FgYellow)

	cfg, err := config.Load()
	if err != nil {
		if compileVerbose {
			warningColor.Printf("Warning: %v\n", err)
		}
		cfg = &config.Config{}
	}

	outputPath := ""
	if len(args) == 2 {
		outputPath = args[1]
	} else if cfg.Emit.Output != "" {
		outputPath = cfg.Emit.Output
	}

	source, err := os.ReadFile(schemaPath)
	if err != nil {
		return fail(errors.New("io", errors.CodeIO,
			fmt.Sprintf("unable to open '%s'", schemaPath),
			errors.SourceLocation{File: schemaPath}))
	}

	// Lex
	logger.Info("lexing", zap.String("file", schemaPath))
	lex := lexer.New(string(source), schemaPath)
	tokens, lexErrors := lex.ScanTokens()
	if len(lexErrors) > 0 {
		first := lexErrors[0]
		return fail(errors.New("lexer", lexCode(first.Message), first.Message,
			errors.SourceLocation{File: first.File, Line: first.Line, Column: first.Column}))
	}
	logger.Info("lexed", zap.Int("tokens", len(tokens)))

	// Parse
	p := parser.New(tokens, schemaPath)
	schema, err := p.Parse()
	if err != nil {
		parseErr := err.(*parser.ParseError)
		return fail(errors.New("parser", parseErr.Code, parseErr.Message,
			errors.SourceLocation{File: parseErr.File, Line: parseErr.Line, Column: parseErr.Column}))
	}
	logger.Info("parsed", zap.Int("messages", len(schema.Messages)), zap.String("package", schema.Package))

	// Resolve
	if err := resolver.Resolve(schema); err != nil {
		return fail(err.(*errors.CompilerError))
	}
	logger.Info("resolved", zap.Int("messages", len(schema.Messages)))

	// Generate
	gen := codegen.NewGenerator()
	code, err := gen.Generate(schema, codegen.Options{
		Package:        cfg.Emit.Package,
		RequiredFields: cfg.Emit.RequiredFields,
	})
	if err != nil {
		return fail(err.(*errors.CompilerError))
	}
	for _, warning := range gen.Warnings() {
		warningColor.Fprintf(os.Stderr, "%s\n", warning.Error())
	}
	logger.Info("generated", zap.Int("bytes", len(code)))

	// Write output. Nothing is flushed on a compilation error; by this
	// point the artifact is complete.
	if outputPath == "" {
		if _, err := os.Stdout.WriteString(code); err != nil {
			return fail(errors.New("io", errors.CodeIO, err.Error(),
				errors.SourceLocation{File: schemaPath}))
		}
	} else {
		if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
			return fail(errors.New("io", errors.CodeIO,
				fmt.Sprintf("unable to write '%s'", outputPath),
				errors.SourceLocation{File: schemaPath}))
		}
		if compileVerbose {
			successColor := color.New(color.FgGreen, color.Bold)
			successColor.Fprintf(os.Stderr, "✓ Compiled in %.2fs\n", time.Since(startTime).Seconds())
			color.New(color.FgCyan).Fprintf(os.Stderr, "  Output: %s\n", outputPath)
		}
	}

	return nil
}

// fail writes the diagnostic for a compiler error and wraps it so the
// root command does not print it again. The user-visible behavior is a
// single line on standard error and a non-zero exit code.
func fail(cerr *errors.CompilerError) error {
	if compileJSON {
		output := struct {
			Success bool                    `json:"success"`
			Errors  []*errors.CompilerError `json:"errors"`
		}{
			Success: false,
			Errors:  []*errors.CompilerError{cerr},
		}
		encoder := json.NewEncoder(os.Stderr)
		encoder.SetIndent("", "  ")
		encoder.Encode(output) //nolint:errcheck
	} else {
		fmt.Fprintln(os.Stderr, cerr.Error())
	}
	return &diagnosticError{err: cerr}
}

// lexCode maps a lexer message to its error code
func lexCode(message string) string {
	switch message {
	case "unterminated string":
		return errors.CodeUnterminatedString
	case "unterminated comment":
		return errors.CodeUnterminatedComment
	case "invalid identifier":
		return errors.CodeInvalidIdentifier
	default:
		return errors.CodeUnexpectedChar
	}
}
