// Package worker - Worker nền xử lý các refresh job của engine economics.
package worker

import (
	"context"
	"sync"
	"time"

	economicssvc "github.com/EstoreFactory109/SellerQI-sub008/internal/api/economics/service"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/global"
	"github.com/EstoreFactory109/SellerQI-sub008/internal/logger"
)

// jobRunTimeout là thời gian tối đa cho một refresh job, tính cả fetch upstream và persist
const jobRunTimeout = 10 * time.Minute

// RefreshWorker quét economics_refresh_jobs theo chu kỳ, claim các job pending
// và chạy lần lượt. Job lỗi được đánh dấu failed kèm lý do, không retry tự động.
type RefreshWorker struct {
	economicsService *economicssvc.EconomicsService
	interval         time.Duration
	batch            int64
	stopChan         chan struct{}
	wg               sync.WaitGroup
}

// NewRefreshWorker tạo mới RefreshWorker với interval và batch size từ config
func NewRefreshWorker(economicsService *economicssvc.EconomicsService) *RefreshWorker {
	interval := 300 * time.Second
	batch := int64(20)
	if global.MongoDB_ServerConfig != nil {
		if global.MongoDB_ServerConfig.RefreshWorkerInterval > 0 {
			interval = time.Duration(global.MongoDB_ServerConfig.RefreshWorkerInterval) * time.Second
		}
		if global.MongoDB_ServerConfig.RefreshWorkerBatch > 0 {
			batch = int64(global.MongoDB_ServerConfig.RefreshWorkerBatch)
		}
	}

	return &RefreshWorker{
		economicsService: economicsService,
		interval:         interval,
		batch:            batch,
		stopChan:         make(chan struct{}),
	}
}

// Start chạy worker trong goroutine riêng
func (w *RefreshWorker) Start() {
	w.wg.Add(1)
	go w.loop()
	logger.GetAppLogger().
		WithField("interval", w.interval.String()).
		WithField("batch", w.batch).
		Info("Refresh worker đã khởi động")
}

// Stop dừng worker và đợi lần chạy hiện tại kết thúc
func (w *RefreshWorker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.GetAppLogger().Info("Refresh worker đã dừng")
}

// loop là vòng quét chính của worker
func (w *RefreshWorker) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce()
		case <-w.stopChan:
			return
		}
	}
}

// runOnce claim và chạy một batch job. Panic trong một lần quét không được
// phép giết worker: recover, log rồi đợi tick sau.
func (w *RefreshWorker) runOnce() {
	log := logger.GetAppLogger()
	errLog := logger.GetErrorLogger()
	defer func() {
		if r := recover(); r != nil {
			errLog.WithField("panic", r).Error("Refresh worker panic, bỏ qua lần quét này")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobRunTimeout)
	defer cancel()

	jobs, err := w.economicsService.ClaimPendingJobs(ctx, w.batch)
	if err != nil {
		errLog.WithError(err).Error("Không claim được refresh jobs")
		return
	}
	if len(jobs) == 0 {
		return
	}

	log.WithField("jobs", len(jobs)).Info("Bắt đầu chạy batch refresh jobs")
	for _, job := range jobs {
		select {
		case <-w.stopChan:
			return
		default:
		}

		jobLog := log.WithField("jobId", job.ID.Hex()).WithField("accountId", job.AccountID)
		if err := w.economicsService.RunJob(ctx, job); err != nil {
			errLog.WithField("jobId", job.ID.Hex()).
				WithField("accountId", job.AccountID).
				WithError(err).
				Error("Refresh job thất bại")
			continue
		}
		jobLog.Info("Refresh job hoàn tất")
	}
}
