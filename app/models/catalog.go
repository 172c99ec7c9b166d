package models

// Category groups products on the menu.
type Category struct {
	Base
	Name string `gorm:"size:255;not null" json:"name"`
}

// CategorySummary is the {id, name} view used in listings.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c Category) Summary() CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name}
}

// Product is a sellable menu item. Price is kept as the decimal string the
// client sent.
type Product struct {
	Base
	Name        string    `gorm:"size:255;not null" json:"name"`
	Price       string    `gorm:"size:50;not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Banner      string    `gorm:"size:255" json:"banner"`
	CategoryID  string    `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
