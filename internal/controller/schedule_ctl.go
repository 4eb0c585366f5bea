package controller

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/service"
)

type ScheduleController struct {
	scheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// ==================== 排班操作 ====================

// Assign 排班
// @Summary 给指定店铺的某天某小时指派主播，anchor_id 为 0 时清空
// @Tags Schedule
// @Param body body dto.AssignScheduleReq true "排班请求"
// @Success 200 {object} map[string]string
// @Router /api/schedules/assign [post]
func (ctrl *ScheduleController) Assign(c *gin.Context) {
	var req dto.AssignScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	err := ctrl.scheduleService.Assign(c.Request.Context(), req.ShopID, req.Date, req.HourSlot, req.AnchorID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidHourSlot) {
			c.JSON(400, gin.H{"code": 400, "message": "无效的时段"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "排班失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// Unassign 取消排班
// @Summary 清空指定店铺某天某小时的排班
// @Tags Schedule
// @Param body body dto.UnassignScheduleReq true "取消请求"
// @Success 200 {object} map[string]string
// @Router /api/schedules/unassign [post]
func (ctrl *ScheduleController) Unassign(c *gin.Context) {
	var req dto.UnassignScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	err := ctrl.scheduleService.Unassign(c.Request.Context(), req.ShopID, req.Date, req.HourSlot)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "取消失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ==================== 播后报告 ====================

// Report 播后数据上报
// @Summary 主播上报自己时段的涨粉数和状态
// @Tags Schedule
// @Param body body dto.ScheduleReportReq true "上报请求"
// @Success 200 {object} map[string]string
// @Router /api/schedules/report [post]
func (ctrl *ScheduleController) Report(c *gin.Context) {
	var req dto.ScheduleReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	err := ctrl.scheduleService.Report(c.Request.Context(), userID, req.ShopID, req.Date, req.HourSlot, req.FansAdded, req.Mood)
	if err != nil {
		if errors.Is(err, service.ErrNotOwnCell) {
			c.JSON(403, gin.H{"code": 403, "message": "只能上报自己的时段"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "上报失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ==================== 周视图 ====================

// Week 周排班查询
// @Summary 取某店铺从周起始日开始 7 天的全部排班
// @Tags Schedule
// @Param shop_id query int true "店铺ID"
// @Param week_start query string true "周起始日 YYYY-MM-DD"
// @Success 200 {array} model.ScheduleEntry
// @Router /api/schedules/week [get]
func (ctrl *ScheduleController) Week(c *gin.Context) {
	var req dto.ScheduleWeekReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	entries, err := ctrl.scheduleService.Week(c.Request.Context(), req.ShopID, req.WeekStart)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": entries})
}

// MyWeek 查自己一周的排班
// @Summary 主播查看自己从周起始日开始 7 天内全部店铺的排班
// @Tags Schedule
// @Param week_start query string true "周起始日 YYYY-MM-DD"
// @Success 200 {array} model.ScheduleEntry
// @Router /api/schedules/mine [get]
func (ctrl *ScheduleController) MyWeek(c *gin.Context) {
	var req dto.ScheduleMyWeekReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	entries, err := ctrl.scheduleService.MyWeek(c.Request.Context(), middleware.GetUserID(c), req.WeekStart)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": entries})
}

// ExportWeek 导出周排班表
// @Summary 把某店铺一周的排班导出为 xlsx
// @Tags Schedule
// @Param shop_id query int true "店铺ID"
// @Param week_start query string true "周起始日 YYYY-MM-DD"
// @Success 200 {file} binary
// @Router /api/schedules/export [get]
func (ctrl *ScheduleController) ExportWeek(c *gin.Context) {
	shopID, err := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	if err != nil || shopID <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的 shop_id"})
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少 week_start"})
		return
	}

	data, err := ctrl.scheduleService.ExportWeek(c.Request.Context(), shopID, weekStart)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "导出失败: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("schedule_%d_%s.xlsx", shopID, weekStart)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
