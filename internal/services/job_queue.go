package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ventafacil/ledger/internal/logger"
)

// Определение пользовательских ошибок.
var (
	ErrJobQueueIsFull = errors.New("очередь заданий заполнена")
	ErrJobQueueClosed = errors.New("очередь заданий закрыта")
)

// Job - функция, выполняющаяся в очереди заданий.
type Job func(ctx context.Context)

// JobQueueService управляет пулом воркеров с общей очередью заданий.
// Используется для фоновых опросов курса: очередь умеет приостанавливаться
// на время, запрошенное внешним сервисом через Retry-After.
type JobQueueService struct {
	jobs    chan Job      // Канал очереди заданий.
	resume  chan struct{} // Канал возобновления после паузы.
	paused  int32         // Флаг паузы (1 - приостановлено).
	closing int32         // Флаг закрытия очереди.
	wg      sync.WaitGroup
	mu      sync.Mutex // Защищает пересоздание канала resume.
}

// NewJobQueueService создает очередь емкости capacity и запускает workers воркеров.
// Воркеры живут до отмены ctx или закрытия очереди через Shutdown.
func NewJobQueueService(ctx context.Context, capacity, workers int) *JobQueueService {
	service := &JobQueueService{
		jobs:   make(chan Job, capacity),
		resume: make(chan struct{}),
	}
	service.start(ctx, workers)

	return service
}

func (jqs *JobQueueService) start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		jqs.wg.Add(1)

		go func() {
			defer jqs.wg.Done()

			for {
				select {
				case job, ok := <-jqs.jobs:
					if !ok {
						// Канал закрыт, завершение воркера.
						return
					}

					// Канал берется под мьютексом: Resume пересоздает его.
					// Флаг проверяется после: если Resume успел подменить
					// канал, флаг уже сброшен и ожидание не начнется.
					jqs.mu.Lock()
					resume := jqs.resume
					jqs.mu.Unlock()

					if atomic.LoadInt32(&jqs.paused) == 1 {
						// Ожидание сигнала возобновления.
						<-resume
					}

					job(ctx)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
}

// Enqueue добавляет задание в очередь.
// Возвращает ошибку, если очередь заполнена или закрыта.
func (jqs *JobQueueService) Enqueue(job Job) error {
	if atomic.LoadInt32(&jqs.closing) == 1 {
		return ErrJobQueueClosed
	}

	select {
	case jqs.jobs <- job:
		return nil
	default:
		return ErrJobQueueIsFull
	}
}

// ScheduleJob планирует выполнение задания через заданную задержку.
func (jqs *JobQueueService) ScheduleJob(job Job, delay time.Duration) {
	time.AfterFunc(delay, func() {
		if err := jqs.Enqueue(job); err != nil {
			logger.Log.Warn("не удалось запланировать задание", zap.Error(err))
		}
	})
}

// Pause приостанавливает выполнение заданий. Уже запущенные задания
// доработают до конца, новые не начнутся до Resume.
func (jqs *JobQueueService) Pause() {
	atomic.CompareAndSwapInt32(&jqs.paused, 0, 1)
}

// Resume возобновляет выполнение заданий после паузы.
func (jqs *JobQueueService) Resume() {
	if atomic.CompareAndSwapInt32(&jqs.paused, 1, 0) {
		jqs.mu.Lock()
		defer jqs.mu.Unlock()
		// Закрытие канала освобождает заблокированных воркеров;
		// новый канал обслуживает будущие паузы.
		close(jqs.resume)
		jqs.resume = make(chan struct{})
	}
}

// PauseAndResume приостанавливает выполнение заданий на заданный
// промежуток времени, а затем возобновляет.
func (jqs *JobQueueService) PauseAndResume(delay time.Duration) {
	jqs.Pause()
	time.AfterFunc(delay, jqs.Resume)
}

// Shutdown закрывает очередь и дожидается завершения всех воркеров.
func (jqs *JobQueueService) Shutdown() {
	if atomic.CompareAndSwapInt32(&jqs.closing, 0, 1) {
		close(jqs.jobs)
		jqs.wg.Wait()
	}
}
