package model

// 反馈分类
const (
	FeedbackCategorySample    = "sample"      // 样品问题，必须关联产品或附图
	FeedbackCategoryLiveIssue = "live_issue"  // 直播问题
	FeedbackCategoryAfterSale = "after_sales" // 售后问题
	FeedbackCategoryOther     = "other"       // 其他
)

// FeedbackCategories 合法分类集合
var FeedbackCategories = map[string]bool{
	FeedbackCategorySample:    true,
	FeedbackCategoryLiveIssue: true,
	FeedbackCategoryAfterSale: true,
	FeedbackCategoryOther:     true,
}

// AnonymousLabel 匿名反馈的展示名，user_id 照常落库
const AnonymousLabel = "某位神秘主播"

// Feedback 主播反馈工单
type Feedback struct {
	BaseModel
	UserID   int64  `gorm:"index;not null"`
	Country  string `gorm:"size:10;index"`
	Category string `gorm:"size:20;index;not null"`
	Content  string `gorm:"type:text;not null"`

	Images    StringList `gorm:"type:jsonb"`
	ProductID *int64     `gorm:"index"`
	Product   *Product   `gorm:"foreignKey:ProductID"`

	IsAnonymous bool `gorm:"default:false"`

	// 管理员回复，非空即视为已处理
	Reply         string `gorm:"type:text"`
	LogisticsInfo string `gorm:"size:100"` // 补发物流单号
}

func (Feedback) TableName() string {
	return "feedbacks"
}
