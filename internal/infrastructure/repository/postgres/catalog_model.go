package postgres

import (
	"database/sql"
	"time"
)

type fighterTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	ImageURL    sql.NullString `db:"image_url"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type fighterInsertModel struct {
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	ImageURL    sql.NullString `db:"image_url"`
}

type categoryTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type categoryInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
}

type combatMoveTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Category     string     `db:"category"`
	AttackName   string     `db:"attack_name"`
	AttackDamage string     `db:"attack_damage"`
	AttackKey    string     `db:"attack_key"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type combatMoveInsertModel struct {
	PublicID     string `db:"public_id"`
	Category     string `db:"category"`
	AttackName   string `db:"attack_name"`
	AttackDamage string `db:"attack_damage"`
	AttackKey    string `db:"attack_key"`
}

type adminTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type adminInsertModel struct {
	PublicID     string `db:"public_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}
