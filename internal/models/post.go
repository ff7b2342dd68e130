package models

import "time"

// Post is a single authored text entry, optionally assigned to a Group.
// Author and CreatedAt are set once at creation and never change; the
// group reference is cleared (not cascaded) if the group is removed.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID  *uint  `gorm:"index" json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// CanEdit indicates whether the current requesting user may edit this post (computed)
	CanEdit   bool      `gorm:"-" json:"can_edit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
