package postgres

import "time"

type matchTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Status    string     `db:"status"`
	Version   int64      `db:"version"`
	Document  []byte     `db:"document"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID  string    `db:"public_id"`
	Status    string    `db:"status"`
	Version   int64     `db:"version"`
	Document  string    `db:"document"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
