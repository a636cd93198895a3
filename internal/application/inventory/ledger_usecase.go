package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/codes"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// Límites de los campos de texto del libro.
const (
	maxItemCode       = 128
	maxBatchNumber    = 64
	maxReasonCode     = 64
	maxDestinationRef = 256
	maxNotes          = 1000
)

// LedgerUseCase libro de inventario: entradas, salidas y traslados de items.
// Cada operación valida todo antes de abrir la transacción y escribe item y
// movimiento en la misma tx; un rechazo no deja escrituras parciales.
type LedgerUseCase struct {
	tx        TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	variants  repository.VariantRepository
	products  repository.ProductRepository
	templates repository.TemplateRepository
	locations repository.LocationRepository
	bins      repository.BinRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	tx TxRunner,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	variants repository.VariantRepository,
	products repository.ProductRepository,
	templates repository.TemplateRepository,
	locations repository.LocationRepository,
	bins repository.BinRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		tx:        tx,
		items:     items,
		movements: movements,
		variants:  variants,
		products:  products,
		templates: templates,
		locations: locations,
		bins:      bins,
		log:       log.Named("ledger"),
		now:       time.Now,
	}
}

// placement ubicación física resuelta (bin opcional).
type placement struct {
	location *entity.Location
	bin      *entity.Bin
}

func (p placement) ref() string {
	if p.bin != nil {
		return p.location.Code + "/" + p.bin.Code
	}
	return p.location.Code
}

func (p placement) binID() string {
	if p.bin != nil {
		return p.bin.ID
	}
	return ""
}

// RegisterEntry crea exactamente un item y su movimiento de entrada (0 → quantity).
// El secuencial del item se asigna bajo bloqueo de la variante dentro de la tx.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, userID string, in dto.RegisterEntryRequest) (*dto.LedgerResult, error) {
	now := uc.now()
	movType := in.MovementType
	if movType == "" {
		movType = entity.MovementPurchase
	}
	if !entity.IsEntryType(movType) {
		return nil, domain.Invalid("movement_type", "tipo de entrada inválido %q (PURCHASE|CUSTOMER_RETURN)", movType)
	}
	if strings.TrimSpace(in.VariantID) == "" {
		return nil, domain.Invalid("variant_id", "es obligatorio")
	}
	if err := domain.Positive("quantity", in.Quantity); err != nil {
		return nil, err
	}
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		if err := domain.NonNegative("unit_cost", *in.UnitCost); err != nil {
			return nil, err
		}
		unitCost = *in.UnitCost
	}
	code := strings.TrimSpace(in.Code)
	if err := checkLengths(
		lengthRule{"code", code, maxItemCode},
		lengthRule{"batch_number", in.BatchNumber, maxBatchNumber},
		lengthRule{"reason_code", in.ReasonCode, maxReasonCode},
		lengthRule{"notes", in.Notes, maxNotes},
	); err != nil {
		return nil, err
	}
	if in.ExpiryDate != nil {
		if in.ExpiryDate.Before(now) {
			return nil, domain.Invalid("expiry_date", "no puede estar en el pasado")
		}
		if in.ManufacturingDate != nil && !in.ExpiryDate.After(*in.ManufacturingDate) {
			return nil, domain.Invalid("expiry_date", "debe ser posterior a manufacturing_date")
		}
	}

	variant, schema, err := uc.resolveItemSchema(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	attrs, err := attribute.ParseJSON(in.Attributes, schema, attribute.TierItem)
	if err != nil {
		uc.reject("entry", in.VariantID, err)
		return nil, err
	}
	place, err := uc.resolvePlacement(ctx, in.LocationID, in.BinID, "location_id", "bin_id")
	if err != nil {
		return nil, err
	}
	if code != "" {
		if codes.IsItemFullCode(code) {
			return nil, domain.Invalid("code", "%q tiene la forma de un fullCode de item, reservada para los códigos generados", code)
		}
		existing, err := uc.items.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.Duplicate("code", code)
		}
	}

	item := &entity.Item{
		ID:                uuid.New().String(),
		Code:              code,
		VariantID:         variant.ID,
		LocationID:        place.location.ID,
		BinID:             place.binID(),
		InitialQuantity:   in.Quantity,
		CurrentQuantity:   in.Quantity,
		UnitCost:          unitCost,
		Status:            entity.ItemStatusActive,
		BatchNumber:       in.BatchNumber,
		ManufacturingDate: in.ManufacturingDate,
		ExpiryDate:        in.ExpiryDate,
		Attributes:        attrs,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		UserID:         userID,
		Type:           movType,
		Quantity:       in.Quantity,
		QuantityBefore: decimal.Zero,
		QuantityAfter:  in.Quantity,
		UnitCost:       unitCost,
		TotalCost:      domaininv.MovementTotal(in.Quantity, unitCost),
		ReasonCode:     in.ReasonCode,
		DestinationRef: place.ref(),
		Notes:          in.Notes,
		CreatedAt:      now,
	}

	err = uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		bins repository.BinRepository,
		variants repository.VariantRepository,
	) error {
		if err := items.LockVariantScope(ctx, variant.ID); err != nil {
			return err
		}
		last, err := items.GetLastByVariant(ctx, variant.ID)
		if err != nil {
			return err
		}
		item.SequentialCode = 1
		if last != nil {
			item.SequentialCode = last.SequentialCode + 1
		}
		scanSeq, err := items.NextScanSequence(ctx)
		if err != nil {
			return err
		}
		if err := assignItemCodes(item, variant, scanSeq); err != nil {
			return err
		}
		if clash, err := items.GetByEAN(ctx, item.EANCode); err != nil {
			return err
		} else if clash != nil {
			return domain.Duplicate("ean_code", item.EANCode)
		}

		if place.bin != nil {
			ok, err := bins.Occupy(ctx, place.bin.ID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.Invalid("bin_id", "el bin %s no tiene capacidad disponible", place.bin.Code)
			}
		}
		if in.UnitCost != nil {
			if err := uc.reaverageCost(ctx, items, variants, variant.ID, in.Quantity, unitCost); err != nil {
				return err
			}
		}
		if err := items.Create(ctx, item); err != nil {
			return err
		}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		uc.reject("entry", in.VariantID, err)
		return nil, err
	}
	uc.logMovement(mov)
	return &dto.LedgerResult{Item: toItemResponse(item), Movement: toMovementResponse(mov)}, nil
}

// RegisterExit descuenta quantity del item con una actualización condicional
// (current_quantity >= quantity). Si no alcanza se rechaza sin cambios ni movimiento.
func (uc *LedgerUseCase) RegisterExit(ctx context.Context, userID, itemID string, in dto.RegisterExitRequest) (*dto.LedgerResult, error) {
	if !entity.IsExitType(in.MovementType) {
		return nil, domain.Invalid("movement_type", "tipo de salida inválido %q (SALE|PRODUCTION|SAMPLE|LOSS)", in.MovementType)
	}
	if err := domain.Positive("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if err := checkLengths(
		lengthRule{"reason_code", in.ReasonCode, maxReasonCode},
		lengthRule{"destination_ref", in.DestinationRef, maxDestinationRef},
		lengthRule{"notes", in.Notes, maxNotes},
	); err != nil {
		return nil, err
	}
	item, err := uc.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var mov *entity.Movement
	var updated *entity.Item
	err = uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		_ repository.BinRepository,
		_ repository.VariantRepository,
	) error {
		after, ok, err := items.DecrementQuantity(ctx, item.ID, in.Quantity, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.InsufficientQuantity(item.ID)
		}
		mov = &entity.Movement{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			UserID:         userID,
			Type:           in.MovementType,
			Quantity:       in.Quantity,
			QuantityBefore: after.Add(in.Quantity),
			QuantityAfter:  after,
			UnitCost:       item.UnitCost,
			TotalCost:      domaininv.MovementTotal(in.Quantity, item.UnitCost),
			ReasonCode:     in.ReasonCode,
			DestinationRef: in.DestinationRef,
			Notes:          in.Notes,
			CreatedAt:      now,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		updated, err = items.GetByID(ctx, item.ID)
		return err
	})
	if err != nil {
		uc.reject("exit", item.ID, err)
		return nil, err
	}
	uc.logMovement(mov)
	return &dto.LedgerResult{Item: toItemResponse(updated), Movement: toMovementResponse(mov)}, nil
}

// TransferItem reubica el item sin tocar su cantidad y registra un movimiento
// TRANSFER con quantityBefore = quantityAfter = currentQuantity.
func (uc *LedgerUseCase) TransferItem(ctx context.Context, userID, itemID string, in dto.TransferItemRequest) (*dto.LedgerResult, error) {
	if err := checkLengths(
		lengthRule{"reason_code", in.ReasonCode, maxReasonCode},
		lengthRule{"notes", in.Notes, maxNotes},
	); err != nil {
		return nil, err
	}
	if _, err := uc.getItem(ctx, itemID); err != nil {
		return nil, err
	}
	dest, err := uc.resolvePlacement(ctx, in.DestinationLocationID, in.DestinationBinID,
		"destination_location_id", "destination_bin_id")
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var mov *entity.Movement
	var moved *entity.Item
	err = uc.tx.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		bins repository.BinRepository,
		_ repository.VariantRepository,
	) error {
		item, err := items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.NotFound("item", itemID)
		}
		if item.LocationID == dest.location.ID && item.BinID == dest.binID() {
			return domain.Invalid("destination", "el item ya está en %s", dest.ref())
		}
		if !item.CurrentQuantity.IsPositive() {
			return domain.Invalid("item_id", "el item %s está agotado y no se puede trasladar", item.ID)
		}
		if dest.bin != nil {
			ok, err := bins.Occupy(ctx, dest.bin.ID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.Invalid("destination_bin_id", "el bin %s no tiene capacidad disponible", dest.bin.Code)
			}
		}
		if item.BinID != "" {
			if err := bins.Release(ctx, item.BinID); err != nil {
				return err
			}
		}
		if err := items.UpdateLocation(ctx, item.ID, dest.location.ID, dest.binID(), now); err != nil {
			return err
		}
		mov = &entity.Movement{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			UserID:         userID,
			Type:           entity.MovementTransfer,
			Quantity:       item.CurrentQuantity,
			QuantityBefore: item.CurrentQuantity,
			QuantityAfter:  item.CurrentQuantity,
			UnitCost:       item.UnitCost,
			TotalCost:      domaininv.MovementTotal(item.CurrentQuantity, item.UnitCost),
			ReasonCode:     in.ReasonCode,
			DestinationRef: dest.ref(),
			Notes:          in.Notes,
			CreatedAt:      now,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		item.LocationID = dest.location.ID
		item.BinID = dest.binID()
		item.UpdatedAt = now
		moved = item
		return nil
	})
	if err != nil {
		uc.reject("transfer", itemID, err)
		return nil, err
	}
	uc.logMovement(mov)
	return &dto.LedgerResult{Item: toItemResponse(moved), Movement: toMovementResponse(mov)}, nil
}

// GetItem obtiene un item por ID.
func (uc *LedgerUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toItemResponse(item)
	return &out, nil
}

// ListItemsByVariant items de una variante por secuencial.
func (uc *LedgerUseCase) ListItemsByVariant(ctx context.Context, variantID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.items.ListByVariant(ctx, variantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: out, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListMovements historial del item en el orden en que se registró.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, itemID string) (*dto.MovementListResponse, error) {
	if _, err := uc.getItem(ctx, itemID); err != nil {
		return nil, err
	}
	list, err := uc.movements.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: out}, nil
}

func (uc *LedgerUseCase) getItem(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item", id)
	}
	return item, nil
}

// resolveItemSchema sigue Variant → Product → Template hasta el esquema de nivel item.
func (uc *LedgerUseCase) resolveItemSchema(ctx context.Context, variantID string) (*entity.Variant, attribute.Schema, error) {
	variant, err := uc.variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, nil, err
	}
	if variant == nil {
		return nil, nil, domain.NotFound("variant", variantID)
	}
	product, err := uc.products.GetByID(ctx, variant.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.NotFound("product", variant.ProductID)
	}
	template, err := uc.templates.GetByID(ctx, product.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	if template == nil {
		return nil, nil, domain.NotFound("template", product.TemplateID)
	}
	return variant, template.ItemAttributes, nil
}

// resolvePlacement acepta un bin (y deduce su ubicación) o solo una ubicación.
// Si llegan ambos, el bin debe pertenecer a la ubicación.
func (uc *LedgerUseCase) resolvePlacement(ctx context.Context, locationID, binID, locationField, binField string) (placement, error) {
	var p placement
	if binID == "" && locationID == "" {
		return p, domain.Invalid(locationField, "se requiere %s o %s", locationField, binField)
	}
	if binID != "" {
		bin, err := uc.bins.GetByID(ctx, binID)
		if err != nil {
			return p, err
		}
		if bin == nil {
			return p, domain.NotFound("bin", binID)
		}
		if locationID != "" && locationID != bin.LocationID {
			return p, domain.Invalid(binField, "el bin %s no pertenece a la ubicación %s", bin.Code, locationID)
		}
		p.bin = bin
		locationID = bin.LocationID
	}
	location, err := uc.locations.GetByID(ctx, locationID)
	if err != nil {
		return p, err
	}
	if location == nil {
		return p, domain.NotFound("location", locationID)
	}
	p.location = location
	return p, nil
}

// reaverageCost recalcula el costo promedio ponderado de la variante con el stock
// vigente (antes de sumar el nuevo item).
func (uc *LedgerUseCase) reaverageCost(
	ctx context.Context,
	items repository.ItemRepository,
	variants repository.VariantRepository,
	variantID string,
	qty, unitCost decimal.Decimal,
) error {
	locked, err := variants.GetByID(ctx, variantID)
	if err != nil {
		return err
	}
	if locked == nil {
		return domain.NotFound("variant", variantID)
	}
	stock, err := items.SumQuantityByVariant(ctx, variantID)
	if err != nil {
		return err
	}
	current := decimal.Zero
	if locked.CostPrice != nil {
		current = *locked.CostPrice
	}
	return variants.UpdateCost(ctx, variantID, domaininv.WeightedAverageCost(stock, current, qty, unitCost))
}

// assignItemCodes fija fullCode, códigos escaneables, slug y código por defecto.
// No se vuelven a calcular después de la creación.
func assignItemCodes(item *entity.Item, variant *entity.Variant, scanSeq int64) error {
	ean, err := codes.EAN13(scanSeq)
	if err != nil {
		return fmt.Errorf("derivar EAN-13: %w", err)
	}
	upc, err := codes.UPCA(scanSeq)
	if err != nil {
		return fmt.Errorf("derivar UPC-A: %w", err)
	}
	item.FullCode = codes.ItemFullCode(variant.FullCode, item.SequentialCode)
	item.Barcode = codes.Barcode(item.FullCode)
	item.EANCode = ean
	item.UPCCode = upc
	item.Slug = codes.Slug(variant.Name, item.FullCode, item.SequentialCode)
	if item.Code == "" {
		item.Code = item.FullCode
	}
	return nil
}

func (uc *LedgerUseCase) logMovement(m *entity.Movement) {
	uc.log.Info().
		Str("movement_id", m.ID).
		Str("item_id", m.ItemID).
		Str("movement_type", m.Type).
		Str("quantity", m.Quantity.String()).
		Str("quantity_before", m.QuantityBefore.String()).
		Str("quantity_after", m.QuantityAfter.String()).
		Str("user_id", m.UserID).
		Msg("movimiento registrado")
}

func (uc *LedgerUseCase) reject(op, ref string, err error) {
	uc.log.Warn().Err(err).Str("operation", op).Str("ref", ref).Msg("operación de inventario rechazada")
}

type lengthRule struct {
	field string
	value string
	max   int
}

func checkLengths(rules ...lengthRule) error {
	for _, r := range rules {
		if err := domain.MaxLength(r.field, r.value, r.max); err != nil {
			return err
		}
	}
	return nil
}

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:                i.ID,
		Code:              i.Code,
		Slug:              i.Slug,
		VariantID:         i.VariantID,
		LocationID:        i.LocationID,
		BinID:             i.BinID,
		SequentialCode:    i.SequentialCode,
		FullCode:          i.FullCode,
		Barcode:           i.Barcode,
		EANCode:           i.EANCode,
		UPCCode:           i.UPCCode,
		InitialQuantity:   i.InitialQuantity,
		CurrentQuantity:   i.CurrentQuantity,
		UnitCost:          i.UnitCost,
		Status:            i.Status,
		BatchNumber:       i.BatchNumber,
		ManufacturingDate: i.ManufacturingDate,
		ExpiryDate:        i.ExpiryDate,
		Attributes:        i.Attributes,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		UserID:         m.UserID,
		MovementType:   m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		UnitCost:       m.UnitCost,
		TotalCost:      m.TotalCost,
		ReasonCode:     m.ReasonCode,
		DestinationRef: m.DestinationRef,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}
