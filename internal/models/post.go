package models

type Post struct {
	BaseModel
	AuthorID   string         `gorm:"not null;index"`
	Content    string         `gorm:"type:text;not null"`
	Visibility PostVisibility `gorm:"type:varchar(20);default:'public'"`

	Author   *User         `gorm:"foreignKey:AuthorID"`
	Likes    []PostLike    `gorm:"foreignKey:PostID"`
	Comments []PostComment `gorm:"foreignKey:PostID"`
}

// PostLike is a set membership: one row per (post, user).
type PostLike struct {
	BaseModel
	PostID string `gorm:"not null;uniqueIndex:idx_post_like_pair"`
	UserID string `gorm:"not null;uniqueIndex:idx_post_like_pair"`
}

type PostComment struct {
	BaseModel
	PostID  string `gorm:"not null;index"`
	UserID  string `gorm:"not null"`
	Content string `gorm:"type:text;not null"`

	User *User `gorm:"foreignKey:UserID"`
}
