package models

import "time"

// Catalog object kinds emitted into square.catalog_objects.
const (
	ObjectTypeItem          = "ITEM"
	ObjectTypeItemVariation = "ITEM_VARIATION"
)

// InventoryStateUnknown is stored when the provider omits the state.
const InventoryStateUnknown = "UNKNOWN"

// DefaultCategoryName is stored when the provider omits a category name.
const DefaultCategoryName = "Unnamed category"

type LocationRow struct {
	Scope      TenantScope
	LocationID string
	Name       string
	Address    *string
	Timezone   string
	Status     string
	Raw        string
}

type CategoryRow struct {
	Scope            TenantScope
	CategoryID       string
	Name             string
	IsTopLevel       bool
	ParentCategoryID *string
	IsDeleted        bool
	Raw              string
}

type CatalogObjectRow struct {
	Scope         TenantScope
	ObjectID      string
	ObjectType    string
	ItemName      *string
	VariationName *string
	SKU           *string
	CategoryID    *string
	IsDeleted     bool
	Raw           string
}

type InventoryCountRow struct {
	Scope             TenantScope
	CatalogObjectID   string
	CatalogObjectType string
	LocationID        string
	State             string
	Quantity          float64
	CalculatedAt      *time.Time
	Raw               string
}

type PaymentRow struct {
	Scope             TenantScope
	PaymentID         string
	OrderID           string
	LocationID        string
	ProviderCreatedAt *time.Time
	ProviderUpdatedAt *time.Time
	Amount            int64
	Currency          string
	Status            string
	CustomerID        string
	ReferenceID       string
	Raw               string
}

type OrderLineItemRow struct {
	Scope           TenantScope
	OrderID         string
	LineItemUID     string
	PaymentID       string
	CatalogObjectID string
	Name            string
	Quantity        float64
	BasePriceAmount *int64
	TotalAmount     *int64
	Currency        *string
	LocationID      string
	Raw             string
}
