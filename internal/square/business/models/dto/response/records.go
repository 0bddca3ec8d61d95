package response

import "encoding/json"

// Typed shapes of the provider's native records, decoded per record by
// the mappers. Fields the pipeline never reads are not declared; the
// verbatim payload is preserved separately.

type Address struct {
	AddressLine1                 string `json:"address_line_1"`
	AddressLine2                 string `json:"address_line_2"`
	Locality                     string `json:"locality"`
	AdministrativeDistrictLevel1 string `json:"administrative_district_level_1"`
	PostalCode                   string `json:"postal_code"`
	Country                      string `json:"country"`
}

type Location struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  *Address `json:"address"`
	Timezone string   `json:"timezone"`
	Status   string   `json:"status"`
}

type CategoryData struct {
	Name       string `json:"name"`
	IsTopLevel *bool  `json:"is_top_level"`
}

type ItemData struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

type ItemVariationData struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	SKU    string `json:"sku"`
}

type CatalogObject struct {
	ID                string             `json:"id"`
	Type              string             `json:"type"`
	IsDeleted         bool               `json:"is_deleted"`
	CategoryData      *CategoryData      `json:"category_data"`
	ItemData          *ItemData          `json:"item_data"`
	ItemVariationData *ItemVariationData `json:"item_variation_data"`
}

type InventoryCount struct {
	CatalogObjectID   string `json:"catalog_object_id"`
	CatalogObjectType string `json:"catalog_object_type"`
	State             string `json:"state"`
	LocationID        string `json:"location_id"`
	Quantity          string `json:"quantity"`
	CalculatedAt      string `json:"calculated_at"`
}

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Payment struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	LocationID  string `json:"location_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	TotalMoney  *Money `json:"total_money"`
	AmountMoney *Money `json:"amount_money"`
	Status      string `json:"status"`
	CustomerID  string `json:"customer_id"`
	ReferenceID string `json:"reference_id"`
}

type OrderLineItem struct {
	UID             string `json:"uid"`
	CatalogObjectID string `json:"catalog_object_id"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	BasePriceMoney  *Money `json:"base_price_money"`
	TotalMoney      *Money `json:"total_money"`
}

// Order keeps its line items raw so each persisted row can carry the
// line item payload verbatim.
type Order struct {
	ID         string            `json:"id"`
	LocationID string            `json:"location_id"`
	LineItems  []json.RawMessage `json:"line_items"`
}
