package models

import "gorm.io/gorm"

// User types that may list products for sale.
const (
	UserTypeBuyer      = "buyer"
	UserTypeFarmer     = "farmer"
	UserTypeWholesaler = "wholesaler"
)

type User struct {
	gorm.Model
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Type     string  `json:"type"`
	Address  string  `json:"address"`
	Avatar   string  `json:"avatar"`
	RegionID *uint   `json:"regionId"`
	Region   *Region `json:"region,omitempty" gorm:"foreignKey:RegionID"`
}
