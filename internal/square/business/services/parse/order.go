package parse

import (
	"encoding/json"
	"fmt"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/models/dto/response"
)

// ParseOrderLineItems flattens one raw order into line item rows. The
// payment id is the first payment observed for the order during the
// run; the location id is inherited from the order. Invalid line items
// (missing uid, non-finite or non-positive quantity) are dropped; the
// returned reasons describe each drop.
func ParseOrderLineItems(scope models.TenantScope, raw json.RawMessage, paymentID string) ([]models.OrderLineItemRow, []string) {
	var order response.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, []string{"undecodable order"}
	}
	if order.ID == "" {
		return nil, []string{"order missing id"}
	}

	var rows []models.OrderLineItemRow
	var dropped []string

	for _, itemRaw := range order.LineItems {
		var item response.OrderLineItem
		if err := json.Unmarshal(itemRaw, &item); err != nil {
			dropped = append(dropped, fmt.Sprintf("order %s: undecodable line item", order.ID))
			continue
		}
		if item.UID == "" {
			dropped = append(dropped, fmt.Sprintf("order %s: line item missing uid", order.ID))
			continue
		}

		quantity, ok := parseQuantity(item.Quantity)
		if !ok || quantity <= 0 {
			dropped = append(dropped, fmt.Sprintf("order %s line item %s: invalid quantity %q", order.ID, item.UID, item.Quantity))
			continue
		}

		row := models.OrderLineItemRow{
			Scope:           scope,
			OrderID:         order.ID,
			LineItemUID:     item.UID,
			PaymentID:       paymentID,
			CatalogObjectID: item.CatalogObjectID,
			Name:            item.Name,
			Quantity:        quantity,
			LocationID:      order.LocationID,
			Raw:             string(itemRaw),
		}
		if item.BasePriceMoney != nil {
			amount := item.BasePriceMoney.Amount
			row.BasePriceAmount = &amount
		}
		if item.TotalMoney != nil {
			amount := item.TotalMoney.Amount
			row.TotalAmount = &amount
		}
		switch {
		case item.BasePriceMoney != nil && item.BasePriceMoney.Currency != "":
			cur := normalizeCurrency(item.BasePriceMoney.Currency)
			row.Currency = &cur
		case item.TotalMoney != nil && item.TotalMoney.Currency != "":
			cur := normalizeCurrency(item.TotalMoney.Currency)
			row.Currency = &cur
		}

		rows = append(rows, row)
	}

	return rows, dropped
}
