package model

// Product 产品档案，SKU 为业务主键
// 名称/尺寸/特点均为六语种文案，导入时整体生成
type Product struct {
	BaseModel
	SKU string `gorm:"size:100;uniqueIndex;not null"`

	Name     TranslationSet `gorm:"type:jsonb"`
	Size     TranslationSet `gorm:"type:jsonb"`
	Features TranslationSet `gorm:"type:jsonb"`

	// 主图 + 花型图集（有序）
	MainImage     string     `gorm:"size:512"`
	PatternImages StringList `gorm:"type:jsonb"`
}

func (Product) TableName() string {
	return "products"
}
