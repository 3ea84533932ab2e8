package models

// Category is a self-referential tree: root categories carry a nil ParentID.
type Category struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string     `gorm:"size:150;not null" json:"title"`
	Image         string     `json:"image"`
	Slug          string     `gorm:"uniqueIndex;size:150;not null" json:"slug"`
	ParentID      *uint      `gorm:"index" json:"parent_id,omitempty"`
	Subcategories []Category `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
	Products      []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

type Brand struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"size:150;not null" json:"title"`
	CategoryID *uint  `json:"category_id,omitempty"`
}
