package core

// NavItem is one sidebar entry. Roles is a display filter only; the backend
// still authorizes every call.
type NavItem struct {
	Href  string
	Label string
	Icon  string
	Roles []Role
}

var navItems = []NavItem{
	{Href: "/dashboard", Label: "Dashboard", Icon: "gauge", Roles: []Role{RoleUser, RoleAcct, RoleAudit, RoleAdmin}},
	{Href: "/dashboard/banks", Label: "Banks", Icon: "bank", Roles: []Role{RoleAcct, RoleAudit, RoleAdmin}},
	{Href: "/dashboard/accounts", Label: "Accounts", Icon: "wallet", Roles: []Role{RoleAcct}},
	{Href: "/dashboard/currencies", Label: "Currencies", Icon: "cash", Roles: []Role{RoleAcct}},
	{Href: "/dashboard/categories", Label: "Categories", Icon: "list", Roles: []Role{RoleAcct}},
	{Href: "/dashboard/transactions", Label: "Transactions", Icon: "check", Roles: []Role{RoleAcct, RoleAudit, RoleAdmin}},
	{Href: "/dashboard/audit", Label: "Audit", Icon: "clipboard", Roles: []Role{RoleAudit, RoleAdmin}},
	{Href: "/dashboard/users", Label: "Users", Icon: "users", Roles: []Role{RoleAdmin}},
}

// VisibleNav returns the sidebar entries visible to a role, in fixed order.
func VisibleNav(role Role) []NavItem {
	var out []NavItem
	for _, item := range navItems {
		for _, r := range item.Roles {
			if r == role {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
