// Copyright 2024 nayalc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dao

import (
	"context"
	"errors"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("用户未找到")

type User struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:用户自增ID"`
	FirstName string `gorm:"type:varchar(128);not null;comment:名"`
	LastName  string `gorm:"type:varchar(128);not null;comment:姓"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_email;comment:邮箱"`
	Ctime     int64
	Utime     int64
}

func (User) TableName() string {
	return "users"
}

type UserDAO interface {
	FindByID(ctx context.Context, id int64) (User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]User, error)
}

type userDAO struct {
	db *egorm.Component
}

func NewUserGORMDAO(db *egorm.Component) UserDAO {
	return &userDAO{db: db}
}

func (g *userDAO) FindByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := g.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (g *userDAO) FindByIDs(ctx context.Context, ids []int64) ([]User, error) {
	var us []User
	err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&us).Error
	return us, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&User{})
}
