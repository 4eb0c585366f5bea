package service

import (
	"context"
	"errors"
	"strings"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
)

// ShopService 直播店铺管理
type ShopService struct {
	repo repository.ShopRepository
}

// NewShopService 创建店铺服务
func NewShopService(repo repository.ShopRepository) *ShopService {
	return &ShopService{repo: repo}
}

// Create 创建店铺
func (s *ShopService) Create(ctx context.Context, name, country string) (*model.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("店铺名称不能为空")
	}

	shop := &model.Shop{
		Name:    name,
		Country: strings.ToUpper(strings.TrimSpace(country)),
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// Get 获取店铺
func (s *ShopService) Get(ctx context.Context, id int64) (*model.Shop, error) {
	return s.repo.GetByID(ctx, id)
}

// List 店铺列表，country 为空时返回全部
func (s *ShopService) List(ctx context.Context, country string) ([]model.Shop, error) {
	if country != "" {
		return s.repo.ListByCountry(ctx, strings.ToUpper(country))
	}
	return s.repo.List(ctx)
}

// Update 更新店铺信息
func (s *ShopService) Update(ctx context.Context, id int64, name, country string) (*model.Shop, error) {
	shop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		shop.Name = name
	}
	if country = strings.TrimSpace(country); country != "" {
		shop.Country = strings.ToUpper(country)
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// Delete 删除店铺，连带删除其全部排班
func (s *ShopService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
