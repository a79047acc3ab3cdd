package models

type User struct {
	BaseModel

	Username     string `json:"username" gorm:"uniqueIndex;size:150"`
	Nick         string `json:"nick"`
	Email        string `json:"-" msgpack:"-"`
	PasswordHash string `json:"-" msgpack:"-"`
	IsAdmin      bool   `json:"is_admin"`
}
