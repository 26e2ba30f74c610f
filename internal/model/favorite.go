package model

import "time"

// Favorite 收藏标记，(user_id, product_id) 唯一，幂等添加
type Favorite struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_fav_user_product"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_fav_user_product"`
	CreatedAt time.Time
}

func (Favorite) TableName() string {
	return "favorites"
}
