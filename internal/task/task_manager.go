package task

import (
	"log"

	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/internal/service"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：翻译补全、翻译缓存清理
type TaskManager struct {
	translationTask *TranslationBackfillTask
	cacheTask       *CacheSweepTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	ProductRepo repository.ProductRepository
	Translator  *service.TranslationService
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps) *TaskManager {
	return &TaskManager{
		translationTask: NewTranslationBackfillTask(deps.ProductRepo, deps.Translator),
		cacheTask:       NewCacheSweepTask(),
	}
}

// Start 启动全部任务
func (m *TaskManager) Start() {
	m.translationTask.Start()
	m.cacheTask.Start()
	log.Println("后台任务已全部启动")
}

// Stop 停止全部任务
func (m *TaskManager) Stop() {
	m.translationTask.Stop()
	m.cacheTask.Stop()
	log.Println("后台任务已全部停止")
}
