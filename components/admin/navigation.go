package admin

// Sidebar headings.
const (
	SidebarTitle    = "Management Chat"
	SidebarSubtitle = "Admin Panel"
)

// Page keys, one per route.
const (
	PageDashboard  = "dashboard"
	PageChannels   = "channels"
	PagePayments   = "payments"
	PageCategories = "categories"
	PageTemplates  = "templates"
	PageUsers      = "users"
	PageOrders     = "orders"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var navigation = []NavItem{
	{Key: PageDashboard, Label: "Dashboard", Path: "/", Icon: "layout-dashboard"},
	{Key: PageChannels, Label: "Channels", Path: "/channels", Icon: "radio"},
	{Key: PagePayments, Label: "Payments", Path: "/payments", Icon: "credit-card"},
	{Key: PageCategories, Label: "Categories", Path: "/categories", Icon: "folder"},
	{Key: PageTemplates, Label: "Templates", Path: "/templates", Icon: "file-text"},
	{Key: PageUsers, Label: "Users", Path: "/users", Icon: "users"},
	{Key: PageOrders, Label: "Orders", Path: "/orders", Icon: "shopping-cart"},
}

// Navigation returns the sidebar items in display order.
func Navigation() []NavItem {
	return append([]NavItem(nil), navigation...)
}

// PageKeys lists every page key in sidebar order.
func PageKeys() []string {
	keys := make([]string, len(navigation))
	for i, item := range navigation {
		keys[i] = item.Key
	}
	return keys
}

// PagePath returns the route of a page key.
func PagePath(key string) (string, bool) {
	for _, item := range navigation {
		if item.Key == key {
			return item.Path, true
		}
	}
	return "", false
}
