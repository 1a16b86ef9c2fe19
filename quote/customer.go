package quote

import "strings"

// CustomerInfo is the "addressed to" block of a quote.
// Contact is optional; empty after trim means absent.
type CustomerInfo struct {
	Company string `json:"company"`
	Contact string `json:"contact"`
}

func (c CustomerInfo) Normalized() CustomerInfo {
	return CustomerInfo{
		Company: strings.TrimSpace(c.Company),
		Contact: strings.TrimSpace(c.Contact),
	}
}

// CompanyBlank reports whether the required company field is missing.
func (c CustomerInfo) CompanyBlank() bool {
	return strings.TrimSpace(c.Company) == ""
}
