package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/internal/service"
)

// TranslationBackfillTask 翻译补全任务
// 导入或外部接口失败会留下缺语言的产品文案，定时补翻
type TranslationBackfillTask struct {
	ProductRepo repository.ProductRepository
	Translator  *service.TranslationService
	Cron        *cron.Cron

	// 控制并发翻译的数量，外部翻译接口扛不住大并发
	concurrencyLimit int
	batchSize        int
	sleepTime        time.Duration
}

func NewTranslationBackfillTask(productRepo repository.ProductRepository, translator *service.TranslationService) *TranslationBackfillTask {
	return &TranslationBackfillTask{
		ProductRepo:      productRepo,
		Translator:       translator,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 2,
		batchSize:        50,
		sleepTime:        200 * time.Millisecond, // 每个协程启动间隔，平滑波峰
	}
}

// Start 启动定时任务
func (t *TranslationBackfillTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次翻译补全检查...")
		t.backfillJob(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc("0 30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.backfillJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动翻译补全定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("翻译补全任务已启动 (每小时检查一次)")
}

// Stop 停止定时任务
func (t *TranslationBackfillTask) Stop() {
	t.Cron.Stop()
}

// backfillJob 补全逻辑
func (t *TranslationBackfillTask) backfillJob(ctx context.Context) {
	products, err := t.ProductRepo.ListIncomplete(ctx, t.batchSize)
	if err != nil {
		log.Printf("[Cron] 翻译不完整产品查询失败: %v", err)
		return
	}
	if len(products) == 0 {
		return
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	log.Printf("[Cron] 开始补全 %d 个产品的翻译，并发上限: %d", len(products), t.concurrencyLimit)

	for _, product := range products {
		select {
		case <-ctx.Done():
			log.Println("[Cron] 任务超时停止")
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		time.Sleep(t.sleepTime)

		go func(p model.Product) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.backfillProduct(ctx, &p); err != nil {
				log.Printf("[Cron] 产品 [%s] 补翻失败: %v", p.SKU, err)
			}
		}(product)
	}

	wg.Wait()
	log.Println("[Cron] 翻译补全完成")
}

// backfillProduct 补全单个产品，只重翻缺语言的字段
func (t *TranslationBackfillTask) backfillProduct(ctx context.Context, p *model.Product) error {
	fields := map[string]interface{}{}

	if !p.Name.IsComplete() && p.Name.CN != "" {
		fields["name"] = t.Translator.SmartTranslate(ctx, p.Name.CN)
	}
	if !p.Size.IsComplete() && p.Size.CN != "" {
		fields["size"] = t.Translator.SmartTranslate(ctx, p.Size.CN)
	}
	if !p.Features.IsComplete() && p.Features.CN != "" {
		fields["features"] = t.Translator.SmartTranslate(ctx, p.Features.CN)
	}

	if len(fields) == 0 {
		return nil
	}
	return t.ProductRepo.UpdateFields(ctx, p.ID, fields)
}
