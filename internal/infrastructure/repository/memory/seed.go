package memory

import (
	"github.com/riskibarqy/fmma-backend/internal/domain/category"
	"github.com/riskibarqy/fmma-backend/internal/domain/combatmove"
)

const (
	CategoryIDBoxing = "cat-boxing"
	CategoryIDMMA    = "cat-mma"
)

// SeedCategories returns the disciplines available out of the box in memory mode.
func SeedCategories() []category.Category {
	return []category.Category{
		{ID: CategoryIDBoxing, Name: "Boxing"},
		{ID: CategoryIDMMA, Name: "MMA"},
	}
}

func SeedCombatMoves() []combatmove.CombatMove {
	return []combatmove.CombatMove{
		{ID: "move-jab", Category: "Boxing", AttackName: "Jab", AttackDamage: "5", AttackKey: "J"},
		{ID: "move-hook", Category: "Boxing", AttackName: "Hook", AttackDamage: "10", AttackKey: "H"},
		{ID: "move-uppercut", Category: "Boxing", AttackName: "Uppercut", AttackDamage: "12", AttackKey: "U"},
		{ID: "move-low-kick", Category: "MMA", AttackName: "Low Kick", AttackDamage: "8", AttackKey: "L"},
		{ID: "move-knee", Category: "MMA", AttackName: "Knee", AttackDamage: "12", AttackKey: "K"},
		{ID: "move-elbow", Category: "MMA", AttackName: "Elbow", AttackDamage: "11", AttackKey: "E"},
	}
}
