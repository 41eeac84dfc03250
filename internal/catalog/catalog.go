// Package catalog defines the bookstore service's wire contract and a typed
// HTTP client for it. Field names on the wire are the service's original
// Portuguese ones and are fixed.
package catalog

// Entry is one sellable book as known to the remote service.
type Entry struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Author      string  `json:"autor"`
	Quantity    int     `json:"quantidade"`
	Price       float64 `json:"valor"`
	CoverURL    string  `json:"capa_url,omitempty"`
	Description string  `json:"descricao,omitempty"`
}

// UpdatePayload is the PUT body for an update keyed by name. The name itself
// is immutable through this path.
type UpdatePayload struct {
	Author   string  `json:"autor"`
	Quantity int     `json:"quantidade"`
	Price    float64 `json:"valor"`
}
