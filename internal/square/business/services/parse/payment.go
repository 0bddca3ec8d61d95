package parse

import (
	"encoding/json"
	"fmt"

	"possync_api/internal/square/business/models"
	"possync_api/internal/square/business/models/dto/response"
)

// ParsePayment maps one raw payment to a row. A payment missing both
// money fields is a hard error, not a silent drop: one such payment
// aborts the whole payment batch. Other validation failures drop the
// record like every other entity kind.
func ParsePayment(scope models.TenantScope, raw json.RawMessage) (*models.PaymentRow, string, error) {
	var payment response.Payment
	if err := json.Unmarshal(raw, &payment); err != nil {
		return nil, "undecodable record", nil
	}
	if payment.ID == "" {
		return nil, "missing id", nil
	}

	money := payment.TotalMoney
	if money == nil {
		money = payment.AmountMoney
	}
	if money == nil {
		return nil, "", fmt.Errorf("payment %s has neither total_money nor amount_money", payment.ID)
	}

	return &models.PaymentRow{
		Scope:             scope,
		PaymentID:         payment.ID,
		OrderID:           payment.OrderID,
		LocationID:        payment.LocationID,
		ProviderCreatedAt: parseTimestamp(payment.CreatedAt),
		ProviderUpdatedAt: parseTimestamp(payment.UpdatedAt),
		Amount:            money.Amount,
		Currency:          normalizeCurrency(money.Currency),
		Status:            payment.Status,
		CustomerID:        payment.CustomerID,
		ReferenceID:       payment.ReferenceID,
		Raw:               string(raw),
	}, "", nil
}
