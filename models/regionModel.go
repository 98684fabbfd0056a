package models

import "gorm.io/gorm"

type Region struct {
	gorm.Model
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Long *float64 `json:"long"`
}
