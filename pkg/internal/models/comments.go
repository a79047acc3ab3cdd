package models

type Comment struct {
	BaseModel

	Text     string `json:"text"`
	PostID   uint   `json:"post_id" gorm:"index"`
	Post     *Post  `json:"post,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint   `json:"author_id" gorm:"index"`
	Author   User   `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}
