package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-stock/pkg/config"
)

// TemplateFile formato del YAML de importación:
//
//	templates:
//	  - name: Ropa
//	    product_attributes:
//	      material: {type: string, required: true}
//	    variant_attributes:
//	      talla: {type: select, options: [S, M, L], required: true}
type TemplateFile struct {
	Templates []dto.CreateTemplateRequest `yaml:"templates"`
}

// ImportResult resultado por plantilla.
type ImportResult struct {
	Name           string `json:"name"`
	Created        bool   `json:"created"`
	ID             string `json:"id,omitempty"`
	SequentialCode int64  `json:"sequential_code,omitempty"`
	Error          string `json:"error,omitempty"`
}

// NewTemplateCommand agrupa los subcomandos de plantillas.
func NewTemplateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Gestionar plantillas de atributos",
	}
	cmd.AddCommand(newTemplateImportCommand(opts))
	return cmd
}

func newTemplateImportCommand(opts *RootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Crea las plantillas definidas en un archivo YAML",
		Long: `Crea cada plantilla del archivo con las mismas reglas que la API:
nombre único, tipos de atributo válidos y al menos un nivel con atributos.
Las plantillas se procesan en orden; una rechazada no detiene a las siguientes.
Con --dry-run se validan contra un almacén en memoria vacío sin tocar el backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplateImport(cmd.Context(), opts, args[0], dryRun, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validar sin escribir en el backend")
	return cmd
}

func runTemplateImport(ctx context.Context, opts *RootOptions, path string, dryRun bool, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := newPrinter(opts, out, errOut)

	file, err := readTemplateFile(path)
	if err != nil {
		return err
	}
	p.log.Debug().Str("file", path).Int("templates", len(file.Templates)).Msg("archivo leído")

	open := opts.OpenTemplates
	if dryRun {
		open = openMemoryTemplates
	}
	uc, closeFn, err := open(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "abrir backend", err)
	}
	defer closeFn()

	results := make([]ImportResult, 0, len(file.Templates))
	lines := make([]string, 0, len(file.Templates)+1)
	failed := 0
	for _, in := range file.Templates {
		res := ImportResult{Name: in.Name}
		created, err := uc.Create(ctx, in)
		if err != nil {
			failed++
			res.Error = err.Error()
			lines = append(lines, fmt.Sprintf("✗ %s: %v", in.Name, err))
			p.log.Warn().Err(err).Str("template", in.Name).Msg("plantilla rechazada")
		} else {
			res.Created = true
			res.ID = created.ID
			res.SequentialCode = created.SequentialCode
			lines = append(lines, fmt.Sprintf("✓ %s (código %03d)", created.Name, created.SequentialCode))
		}
		results = append(results, res)
	}
	if dryRun {
		lines = append(lines, "(dry-run: no se escribió nada)")
	}

	if err := p.emit(results, lines...); err != nil {
		return err
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d de %d plantillas rechazadas", failed, len(file.Templates)))
	}
	return nil
}

// readTemplateFile decodifica el YAML rechazando claves desconocidas.
func readTemplateFile(path string) (*TemplateFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "abrir archivo", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file TemplateFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewExitError(ExitCommandError, "archivo vacío")
		}
		return nil, WrapExitError(ExitCommandError, "YAML inválido", err)
	}
	if len(file.Templates) == 0 {
		return nil, NewExitError(ExitCommandError, "el archivo no define plantillas (clave templates)")
	}
	return &file, nil
}

func openMemoryTemplates(context.Context) (*usecase.TemplateUseCase, func(), error) {
	s := memory.NewStore()
	return usecase.NewTemplateUseCase(memory.NewTemplateRepository(s)), func() {}, nil
}

// openConfiguredTemplates abre el backend indicado por la configuración de entorno.
func openConfiguredTemplates(ctx context.Context) (*usecase.TemplateUseCase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Store.Backend == config.BackendMemory {
		return openMemoryTemplates(ctx)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return usecase.NewTemplateUseCase(postgres.NewTemplateRepository(pool)), pool.Close, nil
}
