package model

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatHistoryModel menyimpan riwayat percakapan asisten AI per user.
type ChatHistoryModel struct {
	ChatHistoryID      uint   `gorm:"column:chat_history_id;primaryKey;autoIncrement" json:"chat_history_id"`
	ChatHistoryUserID  uint   `gorm:"column:chat_history_user_id;not null;index" json:"chat_history_user_id"`
	ChatHistoryRole    string `gorm:"column:chat_history_role;size:20;not null" json:"chat_history_role"`
	ChatHistoryMessage string `gorm:"column:chat_history_message;type:text;not null" json:"chat_history_message"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ChatHistoryModel) TableName() string {
	return "chat_history"
}
