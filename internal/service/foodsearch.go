package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrifast/backend/internal/logger"
)

// searchCacheTTL is how long a remote search response stays fresh.
const searchCacheTTL = 24 * time.Hour

// ErrProductNotFound means the barcode is not in the remote database.
var ErrProductNotFound = errors.New("product not found")

// FoodProduct is one result from the remote food database.
type FoodProduct struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Calories float64 `json:"calories"` // per 100g
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// openFoodFactsSearchResponse mirrors the subset of the OpenFoodFacts
// search payload we consume.
type openFoodFactsSearchResponse struct {
	Products []openFoodFactsProduct `json:"products"`
}

type openFoodFactsProduct struct {
	Code        string `json:"code"`
	ProductName string `json:"product_name"`
	Brands      string `json:"brands"`
	Nutriments  struct {
		EnergyKcal100g float64 `json:"energy-kcal_100g"`
		Proteins100g   float64 `json:"proteins_100g"`
		Carbs100g      float64 `json:"carbohydrates_100g"`
		Fat100g        float64 `json:"fat_100g"`
	} `json:"nutriments"`
}

// FoodSearchService queries the remote food database, caching responses in
// redis so repeated searches and barcode scans stay off the network.
type FoodSearchService struct {
	baseURL string
	client  *http.Client
	rdb     *redis.Client
}

func NewFoodSearchService(baseURL string, rdb *redis.Client) *FoodSearchService {
	return &FoodSearchService{
		baseURL: baseURL,
		rdb:     rdb,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Search looks up products by free-text query, serving from cache when a
// fresh response exists.
func (s *FoodSearchService) Search(ctx context.Context, query string) ([]FoodProduct, error) {
	cacheKey := fmt.Sprintf("food_search:q:%s", query)
	if products, ok := s.fromCache(ctx, cacheKey); ok {
		return products, nil
	}

	endpoint := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=20",
		s.baseURL, url.QueryEscape(query))
	var payload openFoodFactsSearchResponse
	if err := s.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	products := make([]FoodProduct, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, toFoodProduct(p))
	}

	s.toCache(ctx, cacheKey, products)
	return products, nil
}

// Lookup resolves a single product by barcode.
func (s *FoodSearchService) Lookup(ctx context.Context, barcode string) (*FoodProduct, error) {
	cacheKey := fmt.Sprintf("food_search:barcode:%s", barcode)
	if products, ok := s.fromCache(ctx, cacheKey); ok && len(products) == 1 {
		return &products[0], nil
	}

	endpoint := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, url.PathEscape(barcode))
	var payload struct {
		Status  int                  `json:"status"`
		Product openFoodFactsProduct `json:"product"`
	}
	if err := s.fetch(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Status != 1 {
		return nil, ErrProductNotFound
	}

	product := toFoodProduct(payload.Product)
	if product.Barcode == "" {
		product.Barcode = barcode
	}
	s.toCache(ctx, cacheKey, []FoodProduct{product})
	return &product, nil
}

func (s *FoodSearchService) fetch(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("food database request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("food database returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *FoodSearchService) fromCache(ctx context.Context, key string) ([]FoodProduct, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var products []FoodProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *FoodSearchService) toCache(ctx context.Context, key string, products []FoodProduct) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, searchCacheTTL).Err(); err != nil {
		logger.Warn("failed to cache food search response", "key", key, "error", err)
	}
}

func toFoodProduct(p openFoodFactsProduct) FoodProduct {
	return FoodProduct{
		Barcode:  p.Code,
		Name:     p.ProductName,
		Brand:    p.Brands,
		Calories: p.Nutriments.EnergyKcal100g,
		Protein:  p.Nutriments.Proteins100g,
		Carbs:    p.Nutriments.Carbs100g,
		Fat:      p.Nutriments.Fat100g,
	}
}
