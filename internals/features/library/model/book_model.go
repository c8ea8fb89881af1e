// file: internals/features/library/model/book_model.go
package model

import (
	"schoolerp_backend/internals/resource"
)

const (
	CategoryTextbook   = "textbook"
	CategoryReference  = "reference"
	CategoryFiction    = "fiction"
	CategoryNonFiction = "non_fiction"
	CategoryPeriodical = "periodical"
	CategoryOther      = "other"
)

var BookCategories = []string{CategoryTextbook, CategoryReference, CategoryFiction, CategoryNonFiction, CategoryPeriodical, CategoryOther}

type BookModel struct {
	resource.Base `bson:",inline"`

	Title           string `json:"title" gorm:"column:title;type:varchar(200);not null" bson:"title"`
	Author          string `json:"author" gorm:"column:author;type:varchar(160)" bson:"author"`
	ISBN            string `json:"isbn,omitempty" gorm:"column:isbn;type:varchar(20);index" bson:"isbn,omitempty"`
	Publisher       string `json:"publisher,omitempty" gorm:"column:publisher" bson:"publisher,omitempty"`
	PublishedYear   int    `json:"published_year,omitempty" gorm:"column:published_year" bson:"published_year,omitempty" validate:"omitempty,gte=1000,lte=3000"`
	Category        string `json:"category" gorm:"column:category;type:varchar(20);not null" bson:"category" validate:"oneof=textbook reference fiction non_fiction periodical other"`
	ShelfLocation   string `json:"shelf_location,omitempty" gorm:"column:shelf_location" bson:"shelf_location,omitempty"`
	TotalCopies     int    `json:"total_copies" gorm:"column:total_copies;not null" bson:"total_copies" validate:"gte=0"`
	AvailableCopies int    `json:"available_copies" gorm:"column:available_copies;not null" bson:"available_copies" validate:"gte=0,ltefield=TotalCopies"`
}

func (BookModel) TableName() string { return "books" }
