package fighter

import "fmt"

// Fighter is a roster entry shown in match cards.
type Fighter struct {
	ID          string
	ImageURL    string
	Name        string
	Description string
	Category    string
}

func (f Fighter) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fighter id is required")
	}
	if f.Name == "" {
		return fmt.Errorf("fighter name is required")
	}
	return nil
}
