package inventory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// LabelUseCase arma los datos de etiqueta de un item y delega el render.
type LabelUseCase struct {
	items     repository.ItemRepository
	variants  repository.VariantRepository
	products  repository.ProductRepository
	templates repository.TemplateRepository
	renderer  LabelRenderer
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(
	items repository.ItemRepository,
	variants repository.VariantRepository,
	products repository.ProductRepository,
	templates repository.TemplateRepository,
	renderer LabelRenderer,
) *LabelUseCase {
	return &LabelUseCase{items: items, variants: variants, products: products, templates: templates, renderer: renderer}
}

// BuildLabel datos de la etiqueta: códigos del item y los atributos marcados
// show_in_label en el nivel item de la plantilla.
func (uc *LabelUseCase) BuildLabel(ctx context.Context, itemID string) (*dto.ItemLabel, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item", itemID)
	}
	variant, err := uc.variants.GetByID(ctx, item.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.NotFound("variant", item.VariantID)
	}
	product, err := uc.products.GetByID(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", variant.ProductID)
	}
	template, err := uc.templates.GetByID(ctx, product.TemplateID)
	if err != nil {
		return nil, err
	}

	label := &dto.ItemLabel{
		ProductName: product.Name,
		VariantName: variant.Name,
		SKU:         variant.SKU,
		FullCode:    item.FullCode,
		Barcode:     item.Barcode,
		EANCode:     item.EANCode,
		UPCCode:     item.UPCCode,
		BatchNumber: item.BatchNumber,
		ExpiryDate:  item.ExpiryDate,
	}
	if template != nil {
		label.Attributes = labelAttributes(template.ItemAttributes, item.Attributes)
	}
	return label, nil
}

// RenderLabel genera el PDF de la etiqueta del item.
func (uc *LabelUseCase) RenderLabel(ctx context.Context, itemID string) ([]byte, error) {
	label, err := uc.BuildLabel(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderItemLabel(*label)
}

func labelAttributes(schema attribute.Schema, values attribute.Values) []dto.LabelAttribute {
	var out []dto.LabelAttribute
	for _, key := range schema.LabelKeys() {
		v, ok := values[key]
		if !ok {
			continue
		}
		out = append(out, dto.LabelAttribute{
			Key:   key,
			Value: attributeText(v),
			Unit:  schema[key].UnitOfMeasure,
		})
	}
	return out
}

func attributeText(v attribute.Value) string {
	switch t := v.(type) {
	case attribute.Number:
		return t.Decimal().String()
	case attribute.String:
		return string(t)
	case attribute.Select:
		return string(t)
	}
	return ""
}
