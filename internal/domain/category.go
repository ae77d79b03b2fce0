package domain

// Category is one entry of a tenant's ordered category list. The list is
// persisted with replace-all semantics, so Position carries the ordering.
type Category struct {
	SiteID   string `gorm:"primaryKey;type:text" json:"site_id"`
	Name     string `gorm:"primaryKey;type:text" json:"name"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryNames flattens ordered category rows into their labels.
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// CategoriesFromNames builds ordered category rows for a tenant.
func CategoriesFromNames(siteID string, names []string) []Category {
	categories := make([]Category, len(names))
	for i, name := range names {
		categories[i] = Category{SiteID: siteID, Name: name, Position: i}
	}
	return categories
}
