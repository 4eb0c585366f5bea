package dto

// ==================== 排班 ====================

// AssignScheduleReq 排班请求
// AnchorID 为 0 时表示清空该时段
type AssignScheduleReq struct {
	ShopID   int64  `json:"shop_id" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	HourSlot int    `json:"hour_slot" binding:"gte=0,lte=23"`
	AnchorID int64  `json:"anchor_id"`
}

// UnassignScheduleReq 取消排班请求
type UnassignScheduleReq struct {
	ShopID   int64  `json:"shop_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	HourSlot int    `json:"hour_slot" binding:"gte=0,lte=23"`
}

// ==================== 播后报告 ====================

// ScheduleReportReq 播后数据上报请求
type ScheduleReportReq struct {
	ShopID    int64  `json:"shop_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	HourSlot  int    `json:"hour_slot" binding:"gte=0,lte=23"`
	FansAdded int    `json:"fans_added"`
	Mood      string `json:"mood" binding:"omitempty,max=500"`
}

// ==================== 周视图 ====================

// ScheduleWeekReq 周排班查询请求
type ScheduleWeekReq struct {
	ShopID    int64  `form:"shop_id" binding:"required"`
	WeekStart string `form:"week_start" binding:"required"` // 周起始日 YYYY-MM-DD
}

// ScheduleMyWeekReq 主播查自己一周排班的请求
type ScheduleMyWeekReq struct {
	WeekStart string `form:"week_start" binding:"required"` // 周起始日 YYYY-MM-DD
}
