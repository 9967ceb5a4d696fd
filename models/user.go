package models

import "time"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_ACTIVE = 0
const USER_STATUS_PAUSED = 1
const USER_STATUS_BLOCKED = 2

// User representa uma pessoa acompanhada pela Stella.
// O telefone (formato internacional E.164) é a chave natural:
// toda chamada inbound/outbound é resolvida por ele.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Phone     string     `gorm:"not null;unique_index" json:"phone" form:"phone"`
	Timezone  string     `gorm:"default:'America/Sao_Paulo'" json:"timezone" form:"timezone"`
	Language  string     `gorm:"default:'pt-BR'" json:"language" form:"language"`
	Status    int        `gorm:"not null;default:0" json:"status" form:"status"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Phone == "" {
		return "phone"
	}
	return ""
}
