package parse

import (
	"encoding/json"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/models/dto/response"
)

// ItemInfo is the cross-record context a variation inherits from its
// parent item.
type ItemInfo struct {
	Name       string
	CategoryID string
}

// ItemIndex maps item id to the attributes variations inherit.
type ItemIndex map[string]ItemInfo

// BuildItemIndex scans the full catalog record set once for ITEM
// records. Records may arrive in any order relative to their parents,
// so the index must be complete before any variation is mapped.
func BuildItemIndex(raws []json.RawMessage) ItemIndex {
	index := make(ItemIndex)
	for _, raw := range raws {
		var obj response.CatalogObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue
		}
		if obj.Type != models.ObjectTypeItem || obj.ID == "" || obj.ItemData == nil {
			continue
		}
		index[obj.ID] = ItemInfo{
			Name:       obj.ItemData.Name,
			CategoryID: obj.ItemData.CategoryID,
		}
	}
	return index
}

// ParseCatalogObject maps one raw catalog record (ITEM or
// ITEM_VARIATION) to a row. Variations inherit their parent item's
// name and category through the index, falling back to their own name
// when no parent resolves.
func ParseCatalogObject(scope models.TenantScope, raw json.RawMessage, index ItemIndex) (*models.CatalogObjectRow, string) {
	var obj response.CatalogObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, "undecodable record"
	}
	if obj.ID == "" {
		return nil, "missing id"
	}

	row := &models.CatalogObjectRow{
		Scope:      scope,
		ObjectID:   obj.ID,
		ObjectType: obj.Type,
		IsDeleted:  obj.IsDeleted,
		Raw:        string(raw),
	}

	switch obj.Type {
	case models.ObjectTypeItem:
		if obj.ItemData != nil {
			row.ItemName = optional(obj.ItemData.Name)
			row.CategoryID = optional(obj.ItemData.CategoryID)
		}
	case models.ObjectTypeItemVariation:
		var variation response.ItemVariationData
		if obj.ItemVariationData != nil {
			variation = *obj.ItemVariationData
		}
		row.VariationName = optional(variation.Name)
		row.SKU = optional(variation.SKU)
		if parent, ok := index[variation.ItemID]; ok {
			row.ItemName = optional(parent.Name)
			row.CategoryID = optional(parent.CategoryID)
		} else {
			row.ItemName = optional(variation.Name)
		}
	default:
		return nil, "unsupported object type"
	}

	return row, ""
}

// ParseCategory maps one raw CATEGORY catalog record to a row.
func ParseCategory(scope models.TenantScope, raw json.RawMessage) (*models.CategoryRow, string) {
	var obj response.CatalogObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, "undecodable record"
	}
	if obj.ID == "" {
		return nil, "missing id"
	}

	name := models.DefaultCategoryName
	isTopLevel := true
	if obj.CategoryData != nil {
		if obj.CategoryData.Name != "" {
			name = obj.CategoryData.Name
		}
		if obj.CategoryData.IsTopLevel != nil {
			isTopLevel = *obj.CategoryData.IsTopLevel
		}
	}

	return &models.CategoryRow{
		Scope:      scope,
		CategoryID: obj.ID,
		Name:       name,
		IsTopLevel: isTopLevel,
		// TODO: populate parent_category_id once the provider's payload
		// shape for parent linkage is known; the hierarchy is flat until
		// then.
		ParentCategoryID: nil,
		IsDeleted:        obj.IsDeleted,
		Raw:              string(raw),
	}, ""
}
