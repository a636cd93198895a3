package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/codes"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

const (
	maxSKU         = 64
	maxVariantName = 256
	maxBarcode     = 128
	maxEAN         = 13
	maxUPC         = 12
	skuAttempts    = 5
)

var (
	colorHexRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	hundred    = decimal.NewFromInt(100)
)

// VariantUseCase registro de variantes vendibles de un producto.
type VariantUseCase struct {
	tx        CatalogTxRunner
	repo      repository.VariantRepository
	products  repository.ProductRepository
	templates repository.TemplateRepository
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(
	tx CatalogTxRunner,
	repo repository.VariantRepository,
	products repository.ProductRepository,
	templates repository.TemplateRepository,
) *VariantUseCase {
	return &VariantUseCase{tx: tx, repo: repo, products: products, templates: templates}
}

// Create crea una variante. Si no se envía SKU se genera a partir del nombre con
// un sufijo único verificado contra el repositorio.
func (uc *VariantUseCase) Create(ctx context.Context, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	name, err := domain.RequiredText("name", in.Name, maxVariantName)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", in.ProductID)
	}
	template, err := uc.templates.GetByID(ctx, product.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.NotFound("template", product.TemplateID)
	}

	now := time.Now()
	variant := &entity.Variant{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		Name:            name,
		Description:     in.Description,
		Price:           in.Price,
		CostPrice:       in.CostPrice,
		ProfitMargin:    in.ProfitMargin,
		Barcode:         strings.TrimSpace(in.Barcode),
		EANCode:         strings.TrimSpace(in.EANCode),
		UPCCode:         strings.TrimSpace(in.UPCCode),
		ColorHex:        in.ColorHex,
		MinStock:        in.MinStock,
		MaxStock:        in.MaxStock,
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := checkVariantFields(variant); err != nil {
		return nil, err
	}
	if err := uc.checkScannableCodes(ctx, variant); err != nil {
		return nil, err
	}
	variant.Attributes, err = attribute.ParseJSON(in.Attributes, template.VariantAttributes, attribute.TierVariant)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		if sku, err = uc.generateSKU(ctx, name); err != nil {
			return nil, err
		}
	} else {
		if err := domain.MaxLength("sku", sku, maxSKU); err != nil {
			return nil, err
		}
		if err := uc.ensureUnique(ctx, "sku", sku, "", uc.repo.GetBySKU); err != nil {
			return nil, err
		}
	}
	variant.SKU = sku

	err = uc.tx.RunCatalog(ctx, func(_ repository.ProductRepository, variants repository.VariantRepository) error {
		seq, err := variants.NextSequentialCode(ctx, product.ID)
		if err != nil {
			return err
		}
		variant.SequentialCode = seq
		variant.FullCode = codes.VariantFullCode(product.FullCode, seq)
		return variants.Create(ctx, variant)
	})
	if err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// GetByID obtiene una variante por ID.
func (uc *VariantUseCase) GetByID(ctx context.Context, id string) (*dto.VariantResponse, error) {
	variant, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// Update actualización parcial con las mismas reglas que Create. El fullCode no cambia.
func (uc *VariantUseCase) Update(ctx context.Context, id string, in dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	variant, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := domain.RequiredText("name", *in.Name, maxVariantName)
		if err != nil {
			return nil, err
		}
		variant.Name = name
	}
	if in.SKU != nil {
		sku, err := domain.RequiredText("sku", *in.SKU, maxSKU)
		if err != nil {
			return nil, err
		}
		if err := uc.ensureUnique(ctx, "sku", sku, variant.ID, uc.repo.GetBySKU); err != nil {
			return nil, err
		}
		variant.SKU = sku
	}
	setString(&variant.Description, in.Description)
	setString(&variant.Barcode, in.Barcode)
	setString(&variant.EANCode, in.EANCode)
	setString(&variant.UPCCode, in.UPCCode)
	setString(&variant.ColorHex, in.ColorHex)
	setDecimal(&variant.Price, in.Price)
	setDecimal(&variant.MinStock, in.MinStock)
	setDecimal(&variant.MaxStock, in.MaxStock)
	setDecimal(&variant.ReorderPoint, in.ReorderPoint)
	setDecimal(&variant.ReorderQuantity, in.ReorderQuantity)
	if in.CostPrice != nil {
		variant.CostPrice = in.CostPrice
	}
	if in.ProfitMargin != nil {
		variant.ProfitMargin = in.ProfitMargin
	}
	if in.IsActive != nil {
		variant.IsActive = *in.IsActive
	}
	if err := checkVariantFields(variant); err != nil {
		return nil, err
	}
	if err := uc.checkScannableCodes(ctx, variant); err != nil {
		return nil, err
	}
	if len(in.Attributes) > 0 {
		schema, err := uc.variantSchema(ctx, variant.ProductID)
		if err != nil {
			return nil, err
		}
		if variant.Attributes, err = attribute.ParseJSON(in.Attributes, schema, attribute.TierVariant); err != nil {
			return nil, err
		}
	}
	variant.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, variant); err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// ListByProduct lista variantes de un producto con paginación.
func (uc *VariantUseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) (*dto.VariantListResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVariantResponse(v))
	}
	return &dto.VariantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *VariantUseCase) get(ctx context.Context, id string) (*entity.Variant, error) {
	variant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.NotFound("variant", id)
	}
	return variant, nil
}

func (uc *VariantUseCase) variantSchema(ctx context.Context, productID string) (attribute.Schema, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", productID)
	}
	template, err := uc.templates.GetByID(ctx, product.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.NotFound("template", product.TemplateID)
	}
	return template.VariantAttributes, nil
}

// generateSKU "{NOMBRE-EN-SLUG}-{8 hex}" recortado a 64 caracteres, reintentando
// si el sufijo ya existe.
func (uc *VariantUseCase) generateSKU(ctx context.Context, name string) (string, error) {
	base := strings.ToUpper(codes.Slugify(name))
	if base == "" {
		base = "SKU"
	}
	for i := 0; i < skuAttempts; i++ {
		suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
		prefix := base
		if room := maxSKU - len(suffix) - 1; len(prefix) > room {
			prefix = strings.TrimSuffix(prefix[:room], "-")
		}
		sku := prefix + "-" + suffix
		existing, err := uc.repo.GetBySKU(ctx, sku)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return sku, nil
		}
	}
	return "", fmt.Errorf("no se pudo generar un sku único tras %d intentos", skuAttempts)
}

// checkScannableCodes valida formato y unicidad global de barcode/EAN/UPC provistos por el usuario.
func (uc *VariantUseCase) checkScannableCodes(ctx context.Context, v *entity.Variant) error {
	if v.Barcode != "" {
		if err := domain.MaxLength("barcode", v.Barcode, maxBarcode); err != nil {
			return err
		}
		if codes.IsItemBarcode(v.Barcode) {
			return domain.Invalid("barcode", "el formato I{fullCode} está reservado para items")
		}
		if err := uc.ensureUnique(ctx, "barcode", v.Barcode, v.ID, uc.repo.GetByBarcode); err != nil {
			return err
		}
	}
	if v.EANCode != "" {
		if err := checkDigits("ean_code", v.EANCode, maxEAN, codes.ValidEAN13); err != nil {
			return err
		}
		if codes.ReservedEAN13(v.EANCode) {
			return domain.Invalid("ean_code", "los prefijos 2 y 04 están reservados para items")
		}
		if err := uc.ensureUnique(ctx, "ean_code", v.EANCode, v.ID, uc.repo.GetByEAN); err != nil {
			return err
		}
	}
	if v.UPCCode != "" {
		if err := checkDigits("upc_code", v.UPCCode, maxUPC, codes.ValidUPCA); err != nil {
			return err
		}
		if codes.ReservedUPCA(v.UPCCode) {
			return domain.Invalid("upc_code", "el prefijo 4 está reservado para items")
		}
		if err := uc.ensureUnique(ctx, "upc_code", v.UPCCode, v.ID, uc.repo.GetByUPC); err != nil {
			return err
		}
	}
	return nil
}

// ensureUnique consulta previa de unicidad; la restricción UNIQUE del almacén
// cubre la carrera entre esta consulta y la escritura.
func (uc *VariantUseCase) ensureUnique(
	ctx context.Context,
	field, value, selfID string,
	find func(context.Context, string) (*entity.Variant, error),
) error {
	existing, err := find(ctx, value)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate(field, value)
	}
	return nil
}

// checkVariantFields reglas numéricas y de formato de una variante.
func checkVariantFields(v *entity.Variant) error {
	if err := domain.NonNegative("price", v.Price); err != nil {
		return err
	}
	if v.CostPrice != nil {
		if err := domain.NonNegative("cost_price", *v.CostPrice); err != nil {
			return err
		}
	}
	if v.ProfitMargin != nil {
		if v.ProfitMargin.IsNegative() || v.ProfitMargin.GreaterThan(hundred) {
			return domain.Invalid("profit_margin", "debe estar entre 0 y 100")
		}
		if err := domain.Storable("profit_margin", *v.ProfitMargin); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"min_stock", v.MinStock},
		{"max_stock", v.MaxStock},
		{"reorder_point", v.ReorderPoint},
		{"reorder_quantity", v.ReorderQuantity},
	} {
		if err := domain.NonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if v.MinStock.GreaterThan(v.MaxStock) {
		return domain.Invalid("min_stock", "no puede ser mayor que max_stock")
	}
	if v.ColorHex != "" && !colorHexRe.MatchString(v.ColorHex) {
		return domain.Invalid("color_hex", "debe tener el formato #RRGGBB")
	}
	return nil
}

// checkDigits solo dígitos, longitud máxima y, si tiene la longitud completa, dígito de control válido.
func checkDigits(field, code string, length int, valid func(string) bool) error {
	if len(code) > length {
		return domain.Invalid(field, "no puede superar %d dígitos", length)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return domain.Invalid(field, "solo admite dígitos")
		}
	}
	if len(code) == length && !valid(code) {
		return domain.Invalid(field, "dígito de control inválido")
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

func toVariantResponse(v *entity.Variant) *dto.VariantResponse {
	if v == nil {
		return nil
	}
	return &dto.VariantResponse{
		ID:              v.ID,
		ProductID:       v.ProductID,
		SKU:             v.SKU,
		Name:            v.Name,
		Description:     v.Description,
		SequentialCode:  v.SequentialCode,
		FullCode:        v.FullCode,
		Price:           v.Price,
		CostPrice:       v.CostPrice,
		ProfitMargin:    v.ProfitMargin,
		Barcode:         v.Barcode,
		EANCode:         v.EANCode,
		UPCCode:         v.UPCCode,
		ColorHex:        v.ColorHex,
		MinStock:        v.MinStock,
		MaxStock:        v.MaxStock,
		ReorderPoint:    v.ReorderPoint,
		ReorderQuantity: v.ReorderQuantity,
		IsActive:        v.IsActive,
		Attributes:      v.Attributes,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}
