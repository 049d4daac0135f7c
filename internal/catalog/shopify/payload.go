package shopify

import (
	"strconv"

	"github.com/darkkaiser/catalog-sync/internal/catalog/product"
)

const inventoryManagementShopify = "shopify"

type productPayload struct {
	Product productFields `json:"product"`
}

type productFields struct {
	Title      string              `json:"title"`
	BodyHTML   *string             `json:"body_html,omitempty"`
	Vendor     string              `json:"vendor"`
	Handle     string              `json:"handle"`
	Status     string              `json:"status"`
	Tags       string              `json:"tags"`
	Options    []product.Option    `json:"options"`
	Variants   []map[string]any    `json:"variants"`
	Metafields []product.Attribute `json:"metafields"`
	Images     []imageFields       `json:"images,omitempty"`
}

type imageFields struct {
	Src string `json:"src"`
}

type metafieldPayload struct {
	Metafield product.Attribute `json:"metafield"`
}

type variantPricePayload struct {
	Variant variantPriceFields `json:"variant"`
}

type variantPriceFields struct {
	ID             int64          `json:"id"`
	Price          product.Price  `json:"price"`
	CompareAtPrice *product.Price `json:"compare_at_price,omitempty"`
}

type inventoryLevelPayload struct {
	LocationID      int64 `json:"location_id"`
	InventoryItemID int64 `json:"inventory_item_id"`
	Available       int   `json:"available"`
}

// newProductPayload Target을 상품 생성/교체 요청 본문으로 변환합니다.
func newProductPayload(t *product.Target) productPayload {
	fields := productFields{
		Title:      t.Title,
		Vendor:     t.Vendor,
		Handle:     t.Handle,
		Status:     t.Status,
		Tags:       t.Tags,
		Options:    t.Options,
		Variants:   make([]map[string]any, 0, len(t.Variants)),
		Metafields: t.Attributes,
	}
	if fields.Options == nil {
		fields.Options = []product.Option{}
	}
	if fields.Metafields == nil {
		fields.Metafields = []product.Attribute{}
	}

	if t.IncludeDescription {
		desc := t.Description
		fields.BodyHTML = &desc
	}

	for _, v := range t.Variants {
		variant := map[string]any{
			"sku":     v.SKU,
			"barcode": v.Barcode,
		}
		for i, value := range v.OptionValues {
			variant["option"+strconv.Itoa(i+1)] = value
		}
		if t.IncludePriceQty {
			variant["price"] = v.Pricing.Price
			if v.Pricing.CompareAt != nil {
				variant["compare_at_price"] = *v.Pricing.CompareAt
			}
			variant["inventory_management"] = inventoryManagementShopify
		}
		fields.Variants = append(fields.Variants, variant)
	}

	for _, src := range t.Images {
		fields.Images = append(fields.Images, imageFields{Src: src})
	}

	return productPayload{Product: fields}
}

func newVariantPricePayload(variantID int64, pricing product.Pricing) variantPricePayload {
	return variantPricePayload{Variant: variantPriceFields{
		ID:             variantID,
		Price:          pricing.Price,
		CompareAtPrice: pricing.CompareAt,
	}}
}
