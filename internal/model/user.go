package model

import "time"

// User 用户（注册时间可空，旧数据导入时存在缺失）
type User struct {
    ID       int64      `json:"id" gorm:"primaryKey;autoIncrement"`
    Username string     `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
    Email    string     `json:"email" gorm:"type:varchar(128)"`
    Password string     `json:"-" gorm:"type:varchar(128)"` // bcrypt hash
    Role     string     `json:"role" gorm:"type:varchar(16);default:USER"`
    Avatar   string     `json:"avatar"`
    CreateAt *time.Time `json:"createAt" gorm:"index"`
}

func (User) TableName() string { return "users" }

// Role 常量
const (
    RoleAdmin = "ADMIN"
    RoleUser  = "USER"
)
