package models

import "time"

// Category is a storefront navigation entry. Nesting is by name: a category
// whose Sub equals another category's Name is that category's child.
type Category struct {
	ID    int    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Image string `gorm:"column:image" json:"image"`
	Kind  string `gorm:"column:kind" json:"kind"`
	Sub   string `gorm:"column:sub" json:"sub,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName pins the legacy table name.
func (Category) TableName() string {
	return "categories"
}
