package response

import "encoding/json"

// Page envelopes returned by the provider list endpoints. Records stay
// raw here; decoding into typed records is the mappers' job.

type LocationsResponse struct {
	Locations []json.RawMessage `json:"locations"`
	Cursor    string            `json:"cursor"`
}

type CatalogListResponse struct {
	Objects []json.RawMessage `json:"objects"`
	Cursor  string            `json:"cursor"`
}

type InventoryCountsResponse struct {
	Counts []json.RawMessage `json:"counts"`
	Cursor string            `json:"cursor"`
}

type PaymentsResponse struct {
	Payments []json.RawMessage `json:"payments"`
	Cursor   string            `json:"cursor"`
}

type OrderResponse struct {
	Order json.RawMessage `json:"order"`
}
