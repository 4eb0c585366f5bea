package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 操作限流中间件 ====================

// OpRateLimit 操作限流中间件
// 按用户 + 操作类型维度进行限流，未登录请求退化为全局限流
//
// 使用示例:
//
//	router.POST("/api/v1/ai/generate",
//	    middleware.OpRateLimit(middleware.OpTypeAIGenerate, 0),
//	    controller.Generate,
//	)
//
// 参数:
//   - opType: 操作类型
//   - interval: 冷却间隔，0 表示使用默认值
func OpRateLimit(opType OpType, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(opType)
	}

	return func(c *gin.Context) {
		var key string
		if userID := GetUserID(c); userID > 0 {
			key = UserOpKey(userID, opType)
		} else {
			key = GlobalOpKey(opType)
		}

		// 检查限流
		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": retryAfter,
					"op_type":     opType,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())

	if seconds < 60 {
		return fmt.Sprintf("操作过于频繁，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("操作过于频繁，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("操作过于频繁，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}

// ResetOpLimit 重置用户某操作的限流（管理员使用）
func ResetOpLimit(userID int64, opType OpType) {
	GetLimiter().Reset(UserOpKey(userID, opType))
}
