package core

import "sort"

// GroupedAccount is one account row inside the backend's pre-aggregated
// grouped-balances payload.
type GroupedAccount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	AccountNumber   string `json:"accountNumber"`
	PreviousBalance Money  `json:"previousBalance"`
	Inflow          Money  `json:"inflow"`
	Outflow         Money  `json:"outflow"`
	CurrentBalance  Money  `json:"currentBalance"`
}

// GroupedAccounts is the raw wire shape: bank name -> currency code ->
// accounts. The backend owns the aggregation; the client only orders it.
type GroupedAccounts map[string]map[string][]GroupedAccount

type (
	// CurrencyGroup is one currency section inside a bank group.
	CurrencyGroup struct {
		Currency string
		Accounts []GroupedAccount
	}

	// BankGroup is one accordion entry on the summary screen.
	BankGroup struct {
		Bank       string
		Currencies []CurrencyGroup
	}
)

// SortGroups flattens grouped balances into display order: banks
// alphabetically, currencies alphabetically within a bank, accounts
// alphabetically within a currency. Input slices are not mutated.
func SortGroups(g GroupedAccounts) []BankGroup {
	groups := make([]BankGroup, 0, len(g))
	for bank, currencies := range g {
		bg := BankGroup{Bank: bank, Currencies: make([]CurrencyGroup, 0, len(currencies))}
		for code, accounts := range currencies {
			sorted := make([]GroupedAccount, len(accounts))
			copy(sorted, accounts)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
			bg.Currencies = append(bg.Currencies, CurrencyGroup{Currency: code, Accounts: sorted})
		}
		sort.Slice(bg.Currencies, func(i, j int) bool { return bg.Currencies[i].Currency < bg.Currencies[j].Currency })
		groups = append(groups, bg)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Bank < groups[j].Bank })
	return groups
}

// AccountSummary is the server-computed aggregate for one account over a
// date range.
type AccountSummary struct {
	AccountID        int64  `json:"accountId"`
	AccountName      string `json:"accountName"`
	TransactionCount int64  `json:"transactionCount"`
	TotalInflow      Money  `json:"totalInflow"`
	TotalOutflow     Money  `json:"totalOutflow"`
	CurrentBalance   Money  `json:"currentBalance"`
}
