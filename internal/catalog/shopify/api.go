package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/darkkaiser/catalog-sync/internal/catalog/product"
	apperrors "github.com/darkkaiser/catalog-sync/internal/pkg/errors"
	"github.com/tidwall/gjson"
)

// RemoteVariant 원격 상품의 변형입니다.
type RemoteVariant struct {
	ID              int64
	InventoryItemID int64
	Option1         string
}

// RemoteProduct 원격 상품의 식별자와 변형 목록입니다.
type RemoteProduct struct {
	ID       int64
	Handle   string
	Variants []RemoteVariant
}

// RemoteAttribute 원격 상품에 저장된 메타필드입니다.
type RemoteAttribute struct {
	ID    int64
	Key   string
	Value string
}

// API 동기화 엔진이 사용하는 원격 카탈로그 엔드포인트 모음입니다.
//
// 모든 메서드는 2xx 이외의 응답을 TransientRemoteError 또는 TerminalRemoteError로 반환합니다.
type API struct {
	client *Client
}

// NewAPI API를 생성합니다.
func NewAPI(client *Client) *API {
	return &API{client: client}
}

// FindProductsByHandle 핸들이 일치하는 상품을 조회합니다.
func (a *API) FindProductsByHandle(ctx context.Context, handle string) ([]RemoteProduct, error) {
	u := a.client.URL("products.json") + "?" + url.Values{"handle": {handle}}.Encode()

	resp, err := a.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var products []RemoteProduct
	resp.JSON().Get("products").ForEach(func(_, p gjson.Result) bool {
		products = append(products, parseProduct(p))
		return true
	})

	return products, nil
}

// CreateProduct 새 상품을 생성하고, 생성된 상품과 변형의 식별자를 반환합니다.
func (a *API) CreateProduct(ctx context.Context, t *product.Target) (*RemoteProduct, error) {
	resp, err := a.send(ctx, http.MethodPost, a.client.URL("products.json"), newProductPayload(t))
	if err != nil {
		return nil, err
	}

	return productFromResponse(resp)
}

// ReplaceProduct 기존 상품 전체를 목표 상태로 교체합니다.
func (a *API) ReplaceProduct(ctx context.Context, productID int64, t *product.Target) (*RemoteProduct, error) {
	resp, err := a.send(ctx, http.MethodPut, a.client.URL(fmt.Sprintf("products/%d.json", productID)), newProductPayload(t))
	if err != nil {
		return nil, err
	}

	p, err := productFromResponse(resp)
	if err != nil {
		return &RemoteProduct{ID: productID}, nil
	}
	return p, nil
}

// ListMetafields 상품의 메타필드를 네임스페이스로 조회합니다.
func (a *API) ListMetafields(ctx context.Context, productID int64, namespace string) ([]RemoteAttribute, error) {
	u := a.client.URL(fmt.Sprintf("products/%d/metafields.json", productID)) + "?" + url.Values{"namespace": {namespace}}.Encode()

	resp, err := a.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var attrs []RemoteAttribute
	resp.JSON().Get("metafields").ForEach(func(_, m gjson.Result) bool {
		attrs = append(attrs, RemoteAttribute{
			ID:    m.Get("id").Int(),
			Key:   m.Get("key").String(),
			Value: m.Get("value").String(),
		})
		return true
	})

	return attrs, nil
}

// CreateMetafield 상품에 메타필드를 추가합니다.
func (a *API) CreateMetafield(ctx context.Context, productID int64, attr product.Attribute) error {
	_, err := a.send(ctx, http.MethodPost, a.client.URL(fmt.Sprintf("products/%d/metafields.json", productID)), metafieldPayload{Metafield: attr})
	return err
}

// UpdateMetafield 기존 메타필드의 값을 갱신합니다.
func (a *API) UpdateMetafield(ctx context.Context, productID, metafieldID int64, attr product.Attribute) error {
	_, err := a.send(ctx, http.MethodPut, a.client.URL(fmt.Sprintf("products/%d/metafields/%d.json", productID, metafieldID)), metafieldPayload{Metafield: attr})
	return err
}

// UpdateVariantPrice 변형의 가격과 비교 가격을 갱신합니다.
func (a *API) UpdateVariantPrice(ctx context.Context, variantID int64, pricing product.Pricing) error {
	_, err := a.send(ctx, http.MethodPut, a.client.URL(fmt.Sprintf("variants/%d.json", variantID)), newVariantPricePayload(variantID, pricing))
	return err
}

// SetInventoryLevel 재고 품목의 특정 위치 재고 수량을 설정합니다.
func (a *API) SetInventoryLevel(ctx context.Context, locationID, inventoryItemID int64, available int) error {
	_, err := a.send(ctx, http.MethodPost, a.client.URL("inventory_levels/set.json"), inventoryLevelPayload{
		LocationID:      locationID,
		InventoryItemID: inventoryItemID,
		Available:       available,
	})
	return err
}

func (a *API) send(ctx context.Context, method, u string, body any) (*Response, error) {
	resp, err := a.client.Send(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if err := CheckStatus(method, redactURL(u), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func productFromResponse(resp *Response) (*RemoteProduct, error) {
	p := resp.JSON().Get("product")
	if !p.Exists() || p.Get("id").Int() == 0 {
		return nil, apperrors.New(apperrors.ParsingFailed, "응답에 상품 정보가 없습니다")
	}

	rp := parseProduct(p)
	return &rp, nil
}

func parseProduct(p gjson.Result) RemoteProduct {
	rp := RemoteProduct{
		ID:     p.Get("id").Int(),
		Handle: p.Get("handle").String(),
	}
	p.Get("variants").ForEach(func(_, v gjson.Result) bool {
		rp.Variants = append(rp.Variants, RemoteVariant{
			ID:              v.Get("id").Int(),
			InventoryItemID: v.Get("inventory_item_id").Int(),
			Option1:         v.Get("option1").String(),
		})
		return true
	})
	return rp
}
