package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// Códigos de salida del proceso.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // código inválido o plantilla rechazada
	ExitCommandError = 2 // archivo ilegible, backend inaccesible, flags inválidos
)

// ExitError error con código de salida asociado.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError crea un ExitError sin causa.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError envuelve err con un código de salida.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extrae el código de salida; ExitFailure si err no es un ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printer escribe resultados en texto o JSON.
type printer struct {
	format string
	out    io.Writer
	log    *logger.Logger
}

func newPrinter(opts *RootOptions, out, errOut io.Writer) *printer {
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	return &printer{format: opts.Format, out: out, log: logger.NewWriter(errOut, level)}
}

// emit escribe data como JSON o, en modo texto, las líneas de text.
func (p *printer) emit(data any, text ...string) error {
	if p.format == FormatJSON {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	for _, line := range text {
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return err
		}
	}
	return nil
}
