// Package cli implementa stockctl: importación de plantillas desde YAML,
// verificación de códigos de items y emisión de tokens para la API.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-stock/internal/application/usecase"
)

// Formatos de salida admitidos.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// TemplateOpener abre el caso de uso de plantillas; close libera el backend.
type TemplateOpener func(ctx context.Context) (uc *usecase.TemplateUseCase, close func(), err error)

// RootOptions flags globales y dependencias de los comandos.
type RootOptions struct {
	Verbose bool
	Format  string
	// OpenTemplates nil usa el backend configurado por entorno (STORE_BACKEND, DB_*).
	OpenTemplates TemplateOpener
	// JWTSecret vacío se lee de JWT_SECRET.
	JWTSecret string
}

// NewRootCommand crea el comando raíz de stockctl.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}
	if opts.OpenTemplates == nil {
		opts.OpenTemplates = openConfiguredTemplates
	}

	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Herramientas de línea de comandos del inventario",
		Long:          "Importa plantillas de atributos y verifica los códigos generados para productos, variantes e items.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != FormatText && opts.Format != FormatJSON {
				return NewExitError(ExitCommandError, fmt.Sprintf("formato inválido %q: use text o json", opts.Format))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "salida detallada en stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "formato de salida (text|json)")

	cmd.AddCommand(NewTemplateCommand(opts))
	cmd.AddCommand(NewCodesCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	return cmd
}
