package model

import (
	"errors"
	"strings"
)

type Category struct {
	ID    string
	Name  string
	Color string
}

// SameName compares category names the way uniqueness is enforced.
func (c Category) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: category name is required")
	}
	return nil
}

func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func FindCategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.SameName(name) {
			return c, true
		}
	}
	return Category{}, false
}
