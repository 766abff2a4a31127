package combatmove

import "fmt"

// CombatMove is an attack available to a category in the game client.
// Damage and key stay strings because clients send them as typed labels.
type CombatMove struct {
	ID           string
	Category     string
	AttackName   string
	AttackDamage string
	AttackKey    string
}

func (c CombatMove) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("combat move id is required")
	}
	if c.AttackName == "" {
		return fmt.Errorf("combat move attack name is required")
	}
	return nil
}
