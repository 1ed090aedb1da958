package models

import "strings"

// ServiceCategory is one of the trades offered on the home page.
type ServiceCategory struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var ServiceCategories = []ServiceCategory{
	{Name: "Plumbing", Icon: "fa-wrench", Color: "blue"},
	{Name: "Electrical", Icon: "fa-bolt", Color: "yellow"},
	{Name: "Cleaning", Icon: "fa-broom", Color: "green"},
	{Name: "HVAC", Icon: "fa-fan", Color: "cyan"},
	{Name: "Painting", Icon: "fa-paint-roller", Color: "pink"},
	{Name: "Landscaping", Icon: "fa-leaf", Color: "emerald"},
}

// CanonicalCategory maps a case-insensitive category name to its catalog spelling.
func CanonicalCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range ServiceCategories {
		if strings.EqualFold(c.Name, name) {
			return c.Name, true
		}
	}
	return "", false
}
