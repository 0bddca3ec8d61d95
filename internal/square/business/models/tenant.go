package models

// TenantScope is the identity triple every synced row carries. Rows
// from different tenants or provider accounts never collide because
// the scope is part of each table's natural key.
type TenantScope struct {
	TenantID  string
	Provider  string
	AccountID string
}
