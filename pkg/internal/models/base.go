package models

import "time"

type BaseModel struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at" gorm:"<-:create;index"`
	UpdatedAt time.Time `json:"updated_at"`
}
