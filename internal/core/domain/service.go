package domain

// Service is a priced catalog item that can be paid for from a balance.
type Service struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Tariff int64  `json:"tariff"`
}
