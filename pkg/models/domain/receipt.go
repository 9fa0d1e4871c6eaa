package domain

// Receipt is one observed purchase event extracted from a user's mailbox.
// MerchantDomain and CategoryLabel may be empty when the upstream parser
// could not attribute the purchase; the analyzer tolerates both.
type Receipt struct {
	ID             int64
	UserID         string
	SessionID      string
	MerchantDomain string
	CategoryLabel  string
	TotalCost      float64
}

// UniqueMerchantDomains collects the distinct non-empty merchant domains
// seen in the receipts, in first-seen order.
func UniqueMerchantDomains(receipts []Receipt) []string {
	seen := make(map[string]bool, len(receipts))
	var domains []string
	for _, r := range receipts {
		if r.MerchantDomain == "" || seen[r.MerchantDomain] {
			continue
		}
		seen[r.MerchantDomain] = true
		domains = append(domains, r.MerchantDomain)
	}
	return domains
}
