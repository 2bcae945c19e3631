package persistence

import (
	"time"
)

// GreetingModel represents the greetings table
type GreetingModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name;not null;index"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

func (GreetingModel) TableName() string {
	return "greetings"
}
