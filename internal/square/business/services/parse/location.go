package parse

import (
	"encoding/json"
	"strings"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/models/dto/response"
)

// ParseLocation maps one raw location record to a row. A nil row means
// the record was dropped; the returned reason says why.
func ParseLocation(scope models.TenantScope, raw json.RawMessage) (*models.LocationRow, string) {
	var loc response.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, "undecodable record"
	}
	if loc.ID == "" {
		return nil, "missing id"
	}

	return &models.LocationRow{
		Scope:      scope,
		LocationID: loc.ID,
		Name:       loc.Name,
		Address:    joinAddress(loc.Address),
		Timezone:   loc.Timezone,
		Status:     loc.Status,
		Raw:        string(raw),
	}, ""
}

// joinAddress flattens structured address parts into a single line,
// dropping empty parts. A fully blank address is stored as absent, not
// as an empty string.
func joinAddress(addr *response.Address) *string {
	if addr == nil {
		return nil
	}
	parts := []string{
		addr.AddressLine1,
		addr.AddressLine2,
		addr.Locality,
		addr.AdministrativeDistrictLevel1,
		addr.PostalCode,
		addr.Country,
	}
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	joined := strings.Join(kept, ", ")
	return &joined
}
