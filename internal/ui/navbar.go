package ui

// NavbarItem represents an item in the navigation menu
type NavbarItem struct {
	Label    string
	URL      string
	Icon     string
	Position string // "left" or "right"
}

type NavbarTemplateData struct {
	SiteTitle   string
	SiteURL     string
	NavbarItems []NavbarItem
}

var (
	NavbarItemSidebarJSON = NavbarItem{
		Label:    "sidebar.json",
		URL:      "/sidebar.json",
		Icon:     "fa-code",
		Position: "left",
	}
	NavbarItemAstroConfig = NavbarItem{
		Label:    "astro.config.mjs",
		URL:      "/astro.config.mjs",
		Icon:     "fa-file-code",
		Position: "left",
	}
	NavbarItemWebDAV = NavbarItem{
		Label:    "WebDAV",
		URL:      "/dav/",
		Icon:     "fa-folder-open",
		Position: "right",
	}
)
