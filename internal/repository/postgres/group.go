package postgres

import (
	"database/sql"
)

// GroupRepo implements repository.GroupRepository
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// AddGroup records a group chat once
func (r *GroupRepo) AddGroup(chatID int64) (bool, error) {
	query := `
		INSERT INTO groups (chat_id)
		VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING
	`
	res, err := r.db.Exec(query, chatID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListGroups returns group ids in the order they were joined
func (r *GroupRepo) ListGroups() ([]int64, error) {
	return listIDs(r.db, `SELECT chat_id FROM groups ORDER BY id`)
}
