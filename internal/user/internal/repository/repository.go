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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/nayalc/beautyshop/internal/user/internal/domain"
	"github.com/nayalc/beautyshop/internal/user/internal/repository/dao"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

func NewRepository(d dao.UserDAO) UserRepository {
	return &userRepository{d: d}
}

type userRepository struct {
	d dao.UserDAO
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := r.d.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return r.toDomain(u), nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	us, err := r.d.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(us, func(idx int, src dao.User) domain.User {
		return r.toDomain(src)
	}), nil
}

func (r *userRepository) toDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.Id,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Ctime:     u.Ctime,
		Utime:     u.Utime,
	}
}
