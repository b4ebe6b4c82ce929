package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ventafacil/ledger/internal/logger"
	"github.com/ventafacil/ledger/internal/models"
)

// RateFeedService периодически опрашивает внешний источник курса BCV
// и передает полученные значения в журнал наблюдений. Дедупликация
// выполняется на стороне RateService, поэтому опрос можно запускать
// сколь угодно часто без раздувания истории.
type RateFeedService struct {
	client           *resty.Client
	recorder         rateRecorder
	jobQueueService  feedJobQueueService
	externalEndpoint string
	interval         time.Duration
}

// rateResponse - JSON-ответ источника курса.
type rateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

type rateRecorder interface {
	RecordObservation(ctx context.Context, candidate decimal.Decimal, now time.Time) (models.RateRecordResult, error)
}

type feedJobQueueService interface {
	Enqueue(job Job) error

	ScheduleJob(job Job, delay time.Duration)

	PauseAndResume(delay time.Duration)
}

func NewRateFeedService(recorder rateRecorder, jobQueueService feedJobQueueService, externalEndpoint string, interval time.Duration) *RateFeedService {
	return &RateFeedService{
		client:           resty.New(),
		recorder:         recorder,
		jobQueueService:  jobQueueService,
		externalEndpoint: externalEndpoint,
		interval:         interval,
	}
}

// StartPolling ставит в очередь первый опрос; каждый опрос сам
// планирует следующий через interval.
func (rf *RateFeedService) StartPolling() error {
	return rf.jobQueueService.Enqueue(rf.poll)
}

func (rf *RateFeedService) poll(ctx context.Context) {
	defer rf.jobQueueService.ScheduleJob(rf.poll, rf.interval)

	value, retryAfter, err := rf.fetchRate()
	if err != nil {
		logger.Log.Error("не удалось получить курс из внешнего источника", zap.Error(err))
		return
	}

	if retryAfter > 0 {
		// Источник просит снизить частоту - приостанавливаем всю очередь.
		logger.Log.Info("источник курса ограничил частоту запросов", zap.Int("retryAfter", retryAfter))
		rf.jobQueueService.PauseAndResume(time.Second * time.Duration(retryAfter))
		return
	}

	result, err := rf.recorder.RecordObservation(ctx, value, time.Now().UTC())
	if err != nil {
		logger.Log.Error("не удалось записать наблюдение курса", zap.Error(err))
		return
	}

	if result.Inserted {
		logger.Log.Info("записано новое наблюдение курса",
			zap.String("date", result.Rate.Date.String()),
			zap.String("value", result.Rate.Value.String()),
		)
	}
}

// fetchRate запрашивает текущий курс. Второе значение - пауза в секундах,
// затребованная источником через Retry-After (0, если ограничения нет).
func (rf *RateFeedService) fetchRate() (decimal.Decimal, int, error) {
	resp, err := rf.client.R().Get(rf.externalEndpoint + "/api/rate")
	if err != nil {
		return decimal.Decimal{}, 0, fmt.Errorf("ошибка запроса к источнику курса: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		var body rateResponse
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return decimal.Decimal{}, 0, fmt.Errorf("некорректный ответ источника курса: %w", err)
		}
		return body.Rate, 0, nil
	case http.StatusTooManyRequests:
		retryAfter, err := strconv.Atoi(resp.Header().Get("Retry-After"))
		if err != nil {
			return decimal.Decimal{}, 0, fmt.Errorf("некорректный заголовок Retry-After: %w", err)
		}
		return decimal.Decimal{}, retryAfter, nil
	default:
		return decimal.Decimal{}, 0, fmt.Errorf("неожиданный статус источника курса: %d", resp.StatusCode())
	}
}
