package task

import (
	"log"

	"github.com/robfig/cron/v3"

	"liveops_dev_v1_202608/pkg/utils"
)

// CacheSweepTask 翻译缓存清理任务
// 缓存读路径是惰性删除，长期不被读的过期条目靠这里回收
type CacheSweepTask struct {
	Cron *cron.Cron
}

func NewCacheSweepTask() *CacheSweepTask {
	return &CacheSweepTask{
		Cron: cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *CacheSweepTask) Start() {
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		if removed := utils.SweepExpired(); removed > 0 {
			log.Printf("[Cron] 清理过期翻译缓存 %d 条", removed)
		}
	})

	if err != nil {
		log.Fatalf("无法启动缓存清理定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("翻译缓存清理任务已启动 (每10分钟一次)")
}

// Stop 停止定时任务
func (t *CacheSweepTask) Stop() {
	t.Cron.Stop()
}
