package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-stock/internal/domain/codes"
)

// Tipos de código reconocidos por verify.
const (
	KindEAN13 = "EAN-13"
	KindUPCA  = "UPC-A"
)

// VerifyResult salida de codes verify.
type VerifyResult struct {
	Code  string `json:"code"`
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
	// ScanSequence secuencial global si el código es de un item.
	ScanSequence int64 `json:"scan_sequence,omitempty"`
}

// DeriveResult salida de codes derive.
type DeriveResult struct {
	FullCode    string `json:"full_code"`
	VariantCode string `json:"variant_code"`
	Sequential  string `json:"sequential"`
	Barcode     string `json:"barcode"`
	EAN13       string `json:"ean13,omitempty"`
	UPCA        string `json:"upca,omitempty"`
}

// NewCodesCommand agrupa los subcomandos sobre códigos.
func NewCodesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Verificar y derivar códigos de items",
	}
	cmd.AddCommand(newCodesVerifyCommand(opts))
	cmd.AddCommand(newCodesDeriveCommand(opts))
	return cmd
}

func newCodesVerifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <code>",
		Short: "Verifica el dígito de control de un EAN-13 (13 dígitos) o UPC-A (12 dígitos)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			code := strings.TrimSpace(args[0])

			var res VerifyResult
			switch len(code) {
			case 13:
				res = VerifyResult{Code: code, Kind: KindEAN13, Valid: codes.ValidEAN13(code)}
			case 12:
				res = VerifyResult{Code: code, Kind: KindUPCA, Valid: codes.ValidUPCA(code)}
			default:
				return NewExitError(ExitCommandError,
					fmt.Sprintf("longitud %d no reconocida: EAN-13 tiene 13 dígitos y UPC-A 12", len(code)))
			}

			if seq, ok := codes.ScanSequence(code); ok {
				res.ScanSequence = seq
			}

			mark := "✓"
			if !res.Valid {
				mark = "✗"
			}
			line := fmt.Sprintf("%s %s %s", mark, res.Kind, res.Code)
			if res.ScanSequence > 0 {
				line += fmt.Sprintf(" (item, secuencial de escaneo %d)", res.ScanSequence)
			}
			if err := p.emit(res, line); err != nil {
				return err
			}
			if !res.Valid {
				return NewExitError(ExitFailure, "dígito de control inválido")
			}
			return nil
		},
	}
}

func newCodesDeriveCommand(opts *RootOptions) *cobra.Command {
	var scanSeq int64
	cmd := &cobra.Command{
		Use:   "derive <item-full-code>",
		Short: "Muestra el barcode de un fullCode de item y, con --scan-seq, su EAN-13 y UPC-A",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			fullCode := strings.TrimSpace(args[0])
			if !codes.IsItemFullCode(fullCode) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("%q no es un fullCode de item (esperado {variante}-{secuencial})", fullCode))
			}
			variantCode, seq, _ := codes.SplitItemFullCode(fullCode)
			res := DeriveResult{
				FullCode:    fullCode,
				VariantCode: variantCode,
				Sequential:  seq,
				Barcode:     codes.Barcode(fullCode),
			}
			lines := []string{
				"full_code: " + res.FullCode,
				"barcode:   " + res.Barcode,
			}
			if cmd.Flags().Changed("scan-seq") {
				var err error
				if res.EAN13, err = codes.EAN13(scanSeq); err != nil {
					return WrapExitError(ExitCommandError, "--scan-seq inválido", err)
				}
				if res.UPCA, err = codes.UPCA(scanSeq); err != nil {
					return WrapExitError(ExitCommandError, "--scan-seq inválido", err)
				}
				lines = append(lines, "ean13:     "+res.EAN13, "upca:      "+res.UPCA)
			}
			p.log.Debug().Str("full_code", fullCode).Int64("scan_seq", scanSeq).Msg("códigos derivados")
			return p.emit(res, lines...)
		},
	}
	cmd.Flags().Int64Var(&scanSeq, "scan-seq", 0, "secuencial global de escaneo asignado al item")
	return cmd
}
