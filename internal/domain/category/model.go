package category

import "fmt"

type Category struct {
	ID   string
	Name string
}

func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}
