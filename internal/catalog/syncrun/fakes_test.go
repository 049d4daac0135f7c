package syncrun

import (
	"context"
	"strings"
	"sync"

	"github.com/darkkaiser/catalog-sync/internal/catalog/feed"
	"github.com/darkkaiser/catalog-sync/internal/catalog/product"
	"github.com/darkkaiser/catalog-sync/internal/catalog/shopify"
	"github.com/darkkaiser/catalog-sync/internal/service/settings"
)

const testFeedHeader = "Articul;GoodID;Description;ProducerCollectionFull;Country;Season;visibility_on_site;GoodTypeFull;TheSize;WarehouseQuantity;Barcode;RetailPrice;RetailPriceWithDiscount"

func testFeed(rows ...string) []byte {
	return []byte(testFeedHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

var defaultFeedRows = []string{
	"AB-12;1;Зимові боти;Brand;Україна;Зима;1;Взуття;38;2;111;1000;800",
	"AB-12;2;Зимові боти;Brand;Україна;Зима;1;Взуття;39;0;112;1000;800",
	"CD-34;3;Кеди;Brand;Україна;Літо;1;Взуття;40;5;113;500;500",
}

type fakeFeed struct {
	mu sync.Mutex

	data     []byte
	fetchErr error
	// block 설정되면 Fetch가 채널이 닫힐 때까지 대기합니다.
	block   chan struct{}
	entered chan struct{}

	fetches int
	removes int
}

func (f *fakeFeed) Fetch(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	f.fetches++
	block, entered := f.block, f.entered
	f.entered = nil
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.data, nil
}

func (f *fakeFeed) Remove(context.Context) (feed.RemoveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.removes++
	return feed.RemoveResult{Dir: "/csv_folder", Entries: []string{"TSGoods.trs"}, Deleted: true}, nil
}

func (f *fakeFeed) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fetches, f.removes
}

type fakeEnrichment struct {
	table feed.EnrichmentTable
	err   error
}

func (f fakeEnrichment) Load() (feed.EnrichmentTable, error) {
	return f.table, f.err
}

type fixedSettings settings.Settings

func (s fixedSettings) Snapshot() settings.Settings {
	return settings.Settings(s)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.messages...)
}

// memoryCatalog 핸들 기준으로 상품을 보관하는 최소한의 카탈로그입니다.
type memoryCatalog struct {
	mu       sync.Mutex
	nextID   int64
	products map[string]*shopify.RemoteProduct
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{products: make(map[string]*shopify.RemoteProduct)}
}

func (c *memoryCatalog) id() int64 {
	c.nextID++
	return c.nextID
}

func (c *memoryCatalog) FindProductsByHandle(_ context.Context, handle string) ([]shopify.RemoteProduct, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.products[handle]; ok {
		return []shopify.RemoteProduct{*p}, nil
	}
	return nil, nil
}

func (c *memoryCatalog) CreateProduct(_ context.Context, t *product.Target) (*shopify.RemoteProduct, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := &shopify.RemoteProduct{ID: c.id(), Handle: t.Handle}
	for _, v := range t.Variants {
		rv := shopify.RemoteVariant{ID: c.id(), InventoryItemID: c.id()}
		if len(v.OptionValues) > 0 {
			rv.Option1 = v.OptionValues[0]
		}
		p.Variants = append(p.Variants, rv)
	}
	c.products[t.Handle] = p

	return p, nil
}

func (c *memoryCatalog) ReplaceProduct(_ context.Context, _ int64, t *product.Target) (*shopify.RemoteProduct, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.products[t.Handle], nil
}

func (c *memoryCatalog) ListMetafields(context.Context, int64, string) ([]shopify.RemoteAttribute, error) {
	return nil, nil
}

func (c *memoryCatalog) CreateMetafield(context.Context, int64, product.Attribute) error {
	return nil
}

func (c *memoryCatalog) UpdateMetafield(context.Context, int64, int64, product.Attribute) error {
	return nil
}

func (c *memoryCatalog) UpdateVariantPrice(context.Context, int64, product.Pricing) error {
	return nil
}

func (c *memoryCatalog) SetInventoryLevel(context.Context, int64, int64, int) error {
	return nil
}

func (c *memoryCatalog) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.products)
}
