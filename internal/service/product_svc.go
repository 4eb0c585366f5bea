package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/pkg/logger"
)

// ==================== 服务 ====================

// ProductService 产品档案管理：手册查询、表格导入、图片维护
type ProductService struct {
	repo       repository.ProductRepository
	translator *TranslationService
	storage    StorageProvider

	// 逐行导入之间的间隔，免费翻译通道经不起密集外呼
	importInterval time.Duration
}

// NewProductService 创建产品服务
func NewProductService(repo repository.ProductRepository, translator *TranslationService, storage StorageProvider) *ProductService {
	return &ProductService{
		repo:           repo,
		translator:     translator,
		storage:        storage,
		importInterval: 150 * time.Millisecond,
	}
}

// ==================== 查询 ====================

// List 产品列表，关键字匹配 SKU 或名称
func (s *ProductService) List(ctx context.Context, keyword string, page, pageSize int) ([]model.Product, int64, error) {
	return s.repo.List(ctx, repository.ProductFilter{
		Keyword:  keyword,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get 按 ID 取单个产品
func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySKU 按 SKU 精确查询
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return s.repo.GetBySKU(ctx, strings.TrimSpace(sku))
}

// ==================== 手工维护 ====================

// Create 手工建档，文案走一次六语种扇出
func (s *ProductService) Create(ctx context.Context, sku, name, size, features string) (*model.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("SKU 不能为空")
	}

	product := &model.Product{
		SKU:      sku,
		Name:     s.translator.SmartTranslate(ctx, name),
		Size:     s.translator.SmartTranslate(ctx, size),
		Features: s.translator.SmartTranslate(ctx, features),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateField 更新单个文案字段并重新生成翻译
func (s *ProductService) UpdateField(ctx context.Context, id int64, field, value string) error {
	var column string
	switch field {
	case "name":
		column = "name"
	case "size":
		column = "size"
	case "features":
		column = "features"
	default:
		return fmt.Errorf("不支持的字段: %s", field)
	}

	set := s.translator.SmartTranslate(ctx, value)
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{column: set})
}

// Delete 删除产品档案
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ==================== 表格导入 ====================

// ImportRow 表格里的一行
type ImportRow struct {
	SKU      string
	Name     string
	Size     string
	Features string
}

// ImportError 单个 SKU 的导入失败记录
type ImportError struct {
	SKU     string `json:"sku"`
	Message string `json:"message"`
}

// ImportReport 导入结果，逐条列出失败项
type ImportReport struct {
	Total     int           `json:"total"`     // 合并后的 SKU 数
	Succeeded int           `json:"succeeded"`
	Errors    []ImportError `json:"errors"`
}

// ParseSpreadsheet 解析上传的 xlsx，只读第一个工作表
// 表头兼容中英文：SKU / Name|商品名称 / Size|尺寸 / Features|特点
func (s *ProductService) ParseSpreadsheet(data []byte) ([]ImportRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解析 Excel 失败: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel 中没有工作表")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %v", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("表格没有数据行")
	}

	// 定位各列
	colIdx := map[string]int{"sku": -1, "name": -1, "size": -1, "features": -1}
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case "SKU":
			colIdx["sku"] = i
		case "Name", "商品名称":
			colIdx["name"] = i
		case "Size", "尺寸":
			colIdx["size"] = i
		case "Features", "特点":
			colIdx["features"] = i
		}
	}
	if colIdx["sku"] < 0 {
		return nil, fmt.Errorf("找不到 SKU 列")
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []ImportRow
	for _, row := range rows[1:] {
		item := ImportRow{
			SKU:      cell(row, colIdx["sku"]),
			Name:     cell(row, colIdx["name"]),
			Size:     cell(row, colIdx["size"]),
			Features: cell(row, colIdx["features"]),
		}
		if item.SKU == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// mergeRows 同一 SKU 的多行合并为一条：
// 名称取第一个非空，特点取最长，尺寸去重后用 " / " 连接
func mergeRows(rows []ImportRow) []ImportRow {
	type group struct {
		row   ImportRow
		sizes []string
	}

	index := make(map[string]*group)
	var order []string

	for _, row := range rows {
		g, ok := index[row.SKU]
		if !ok {
			g = &group{row: ImportRow{SKU: row.SKU}}
			index[row.SKU] = g
			order = append(order, row.SKU)
		}
		if g.row.Name == "" && row.Name != "" {
			g.row.Name = row.Name
		}
		if len(row.Features) > len(g.row.Features) {
			g.row.Features = row.Features
		}
		if row.Size != "" {
			exists := false
			for _, sz := range g.sizes {
				if sz == row.Size {
					exists = true
					break
				}
			}
			if !exists {
				g.sizes = append(g.sizes, row.Size)
			}
		}
	}

	merged := make([]ImportRow, 0, len(order))
	for _, sku := range order {
		g := index[sku]
		g.row.Size = strings.Join(g.sizes, " / ")
		merged = append(merged, g.row)
	}
	return merged
}

// ImportRows 批量导入：按 SKU 合并、逐条翻译后 upsert
// 单条失败不中断，全部跑完后逐条报告
func (s *ProductService) ImportRows(ctx context.Context, rows []ImportRow) *ImportReport {
	merged := mergeRows(rows)
	report := &ImportReport{Total: len(merged)}

	for i, item := range merged {
		select {
		case <-ctx.Done():
			report.Errors = append(report.Errors, ImportError{
				SKU:     item.SKU,
				Message: "导入中断: " + ctx.Err().Error(),
			})
			return report
		default:
		}

		logger.L().Infof("正在导入: %s (%d/%d)", item.SKU, i+1, len(merged))

		product := &model.Product{
			SKU:      item.SKU,
			Name:     s.translator.SmartTranslate(ctx, item.Name),
			Size:     s.translator.SmartTranslate(ctx, item.Size),
			Features: s.translator.SmartTranslate(ctx, item.Features),
		}
		// upsert 只覆盖文案列，已挂的图片不动
		if err := s.repo.UpsertBySKU(ctx, product); err != nil {
			report.Errors = append(report.Errors, ImportError{
				SKU:     item.SKU,
				Message: err.Error(),
			})
			continue
		}
		report.Succeeded++

		if i < len(merged)-1 {
			time.Sleep(s.importInterval)
		}
	}
	return report
}

// ==================== 图片维护 ====================

// AttachImage 上传图片并挂到产品上
// isPattern 为真追加到花型图集，否则设为主图
// 被替换的旧主图不删远端对象，历史引用可能还在用
func (s *ProductService) AttachImage(ctx context.Context, id int64, data []byte, filename string, isPattern bool) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("存储服务未配置")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.storage.Upload(ctx, data, filename, "")
	if err != nil {
		return "", err
	}

	if isPattern {
		images := append(product.PatternImages, url)
		err = s.repo.UpdateFields(ctx, id, map[string]interface{}{"pattern_images": images})
	} else {
		err = s.repo.UpdateFields(ctx, id, map[string]interface{}{"main_image": url})
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// DetachPatternImage 按下标移除花型图引用，其余图保持顺序
// 只解引用，不删对象
func (s *ProductService) DetachPatternImage(ctx context.Context, id int64, index int) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(product.PatternImages) {
		return fmt.Errorf("图片下标越界: %d", index)
	}

	images := make(model.StringList, 0, len(product.PatternImages)-1)
	images = append(images, product.PatternImages[:index]...)
	images = append(images, product.PatternImages[index+1:]...)

	return s.repo.UpdateFields(ctx, id, map[string]interface{}{"pattern_images": images})
}

// ClearMainImage 清空主图引用，不删对象
func (s *ProductService) ClearMainImage(ctx context.Context, id int64) error {
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{"main_image": ""})
}
