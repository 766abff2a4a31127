package admin

import (
	"fmt"
	"strings"
)

// Admin is a back-office account allowed to manage game data.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

func (a Admin) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("admin id is required")
	}
	if !strings.Contains(a.Email, "@") {
		return fmt.Errorf("admin email is invalid")
	}
	if a.PasswordHash == "" {
		return fmt.Errorf("admin password hash is required")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal is the authenticated admin attached to a request.
type Principal struct {
	AdminID string
	Email   string
}
