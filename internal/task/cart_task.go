package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"marketplace_dev_v1/internal/repository"
)

// ==================== CartCleanupTask 购物车清理任务 ====================

// CartCleanupTask 定期清理长期闲置的购物车行
// 游离的废弃购物车只占存储，不影响结算正确性
type CartCleanupTask struct {
	cartRepo   repository.CartRepository
	log        *zap.Logger
	cron       *cron.Cron
	staleAfter time.Duration
	spec       string
}

// NewCartCleanupTask 创建清理任务
// staleAfter: 行闲置多久视为过期; spec: cron 表达式（标准 5 段）
func NewCartCleanupTask(cartRepo repository.CartRepository, log *zap.Logger, staleAfter time.Duration, spec string) *CartCleanupTask {
	if staleAfter <= 0 {
		staleAfter = 30 * 24 * time.Hour
	}
	if spec == "" {
		spec = "0 3 * * *"
	}
	return &CartCleanupTask{
		cartRepo:   cartRepo,
		log:        log,
		cron:       cron.New(),
		staleAfter: staleAfter,
		spec:       spec,
	}
}

// Start 启动定时任务
func (t *CartCleanupTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	t.log.Info("购物车清理任务已启动",
		zap.String("spec", t.spec),
		zap.Duration("stale_after", t.staleAfter))
	return nil
}

// Stop 停止定时任务
func (t *CartCleanupTask) Stop() {
	t.cron.Stop()
}

func (t *CartCleanupTask) runOnce(ctx context.Context) {
	before := time.Now().Add(-t.staleAfter)
	removed, err := t.cartRepo.DeleteStale(ctx, before)
	if err != nil {
		t.log.Error("购物车清理失败", zap.Error(err))
		return
	}
	if removed > 0 {
		t.log.Info("购物车清理完成", zap.Int64("removed", removed))
	}
}
