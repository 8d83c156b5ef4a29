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

package service

import (
	"context"

	"github.com/nayalc/beautyshop/internal/user/internal/domain"
	"github.com/nayalc/beautyshop/internal/user/internal/repository"
)

//go:generate mockgen -source=./service.go -package=usermocks -destination=../../mocks/user.mock.go -typed Service
type Service interface {
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

func NewService(repo repository.UserRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.UserRepository
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	return s.repo.FindByIDs(ctx, ids)
}
