package models

import "time"

// Recipe is a stored recipe row. The primary key is (id, owner): ids are
// unique within one user's collection, and clients may bring their own
// (locally-generated or search-provider ids) which are preserved verbatim.
type Recipe struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Owner       string    `gorm:"primaryKey;size:64" json:"-"`
	CreatedAt   time.Time `json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:50" json:"category"`
	ImageURI    string    `gorm:"size:512" json:"imageUri"`
}
