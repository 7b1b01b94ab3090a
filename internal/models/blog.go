package models

import (
	"time"
)

// BlogPost is an article managed through the CMS. Slug is derived
// deterministically from Title and is the public lookup key; uniqueness
// is enforced by the database. The live-immediately default for
// Published belongs to the request layer, not the column: a gorm
// default tag would make GORM omit an explicit false from the INSERT
// and drafts could never be created.
type BlogPost struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Slug      string  `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Excerpt   string  `gorm:"size:500" json:"excerpt"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	Category  string  `gorm:"size:100;index" json:"category"`
	ImageURL  *string `gorm:"size:512" json:"image_url"`
	ReadTime  uint    `json:"read_time"`
	Published bool    `gorm:"index;not null" json:"published"`
	AuthorID  string  `gorm:"type:char(36);not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for BlogPost
func (BlogPost) TableName() string {
	return "blog_posts"
}
