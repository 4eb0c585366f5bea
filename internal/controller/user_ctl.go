package controller

import (
	"github.com/gin-gonic/gin"

	"liveops_dev_v1_202608/internal/api/dto"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/internal/service"
)

type UserController struct {
	authService *service.AuthService
	logRepo     repository.ActivityLogRepository
}

func NewUserController(authService *service.AuthService, logRepo repository.ActivityLogRepository) *UserController {
	return &UserController{authService: authService, logRepo: logRepo}
}

// ==================== 用户管理 ====================

// ListProfiles 用户列表
// @Summary 用户列表，支持角色/国家/关键字过滤
// @Tags User
// @Param role query string false "角色筛选"
// @Param country query string false "国家筛选"
// @Param keyword query string false "用户名/邮箱搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {array} dto.ProfileInfo
// @Router /api/users [get]
func (ctrl *UserController) ListProfiles(c *gin.Context) {
	var req dto.ProfileListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	profiles, total, err := ctrl.authService.ListProfiles(c.Request.Context(), repository.ProfileFilter{
		Role:     req.Role,
		Country:  req.Country,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	list := make([]*dto.ProfileInfo, 0, len(profiles))
	for i := range profiles {
		list = append(list, toProfileInfo(&profiles[i]))
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    list,
		"total":   total,
	})
}

// ListAnchors 主播列表
// @Summary 主播列表，排班选人用
// @Tags User
// @Success 200 {array} dto.ProfileInfo
// @Router /api/users/anchors [get]
func (ctrl *UserController) ListAnchors(c *gin.Context) {
	profiles, _, err := ctrl.authService.ListProfiles(c.Request.Context(), repository.ProfileFilter{
		Role:     model.RoleAnchor,
		Country:  c.Query("country"),
		PageSize: 500,
	})
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	list := make([]*dto.ProfileInfo, 0, len(profiles))
	for i := range profiles {
		list = append(list, toProfileInfo(&profiles[i]))
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": list})
}

// FixUsernames 批量修复用户名
// @Summary 把空用户名批量回填为邮箱前缀
// @Tags User
// @Success 200 {object} map[string]int
// @Router /api/users/fix-usernames [post]
func (ctrl *UserController) FixUsernames(c *gin.Context) {
	fixed, err := ctrl.authService.FixUsernames(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "修复失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{"fixed": fixed}})
}

// ListActivity 动作流水查询
// @Summary 按用户或动作类型查最近的动作流水
// @Tags User
// @Param user_id query int false "用户ID，与 action 二选一"
// @Param action query string false "动作类型，如 login/product_import/bulk_email"
// @Param limit query int false "返回条数" default(50)
// @Router /api/users/activity [get]
func (ctrl *UserController) ListActivity(c *gin.Context) {
	var req dto.ActivityListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}

	var (
		logs []model.ActivityLog
		err  error
	)
	switch {
	case req.UserID > 0:
		logs, err = ctrl.logRepo.ListByUser(c.Request.Context(), req.UserID, req.Limit)
	case req.Action != "":
		logs, err = ctrl.logRepo.ListByAction(c.Request.Context(), req.Action, req.Limit)
	default:
		c.JSON(400, gin.H{"code": 400, "message": "user_id 和 action 至少指定一个"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": logs})
}
