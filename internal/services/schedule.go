package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/db/repos"
	"github.com/celestiaorg/cadence/internal/events"
	"github.com/celestiaorg/cadence/internal/executor"
	"github.com/celestiaorg/cadence/internal/logger"
	"github.com/celestiaorg/cadence/internal/metrics"
	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/types"
)

// DefaultRunTimeout bounds a single run when none is configured
const DefaultRunTimeout = 5 * time.Minute

// ErrScheduleExists is returned when a schedule name is already taken
var ErrScheduleExists = errors.New("schedule already exists")

// Publisher receives an event after every schedule mutation.
// Publish reports whether the event was accepted.
type Publisher interface {
	Publish(event events.Event) bool
}

// Schedule handles schedule-related operations
type Schedule struct {
	repo        *repos.ScheduleRepository
	historyRepo *repos.HistoryRepository
	executor    executor.Executor
	runTimeout  time.Duration
	publisher   Publisher
	now         func() time.Time
}

// NewScheduleService creates a new instance of ScheduleService
func NewScheduleService(repo *repos.ScheduleRepository, historyRepo *repos.HistoryRepository, exec executor.Executor, runTimeout time.Duration) *Schedule {
	if runTimeout <= 0 {
		runTimeout = DefaultRunTimeout
	}
	return &Schedule{
		repo:        repo,
		historyRepo: historyRepo,
		executor:    exec,
		runTimeout:  runTimeout,
		now:         time.Now,
	}
}

// SetPublisher registers the component to notify after mutations
func (s *Schedule) SetPublisher(p Publisher) {
	s.publisher = p
}

// ListRecords fetches every schedule as a console record, in id order
func (s *Schedule) ListRecords(ctx context.Context) ([]schedule.Record, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	records := types.NewRecords(schedules, s.now())
	for _, r := range records {
		if ds := schedule.Classify(r); !ds.Known() {
			logger.WarnWithFields("schedule status has no color", map[string]interface{}{
				"schedule_id": r.ID,
				"code":        ds.Code,
				"alias":       ds.Alias,
			})
		}
	}
	return records, nil
}

// FilterRecords returns the records matching the criteria, in id order
func (s *Schedule) FilterRecords(ctx context.Context, criteria schedule.Criteria) ([]schedule.Record, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.Filter(records, criteria), nil
}

// Table returns one page of the filtered and sorted schedule table
func (s *Schedule) Table(ctx context.Context, q types.TableQuery, perms types.Permissions) (*types.ListResponse[types.TableRow], error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	visible, err := s.FilterRecords(ctx, q.Criteria)
	if err != nil {
		return nil, err
	}
	visible = schedule.SortByLatestRunTime(visible, q.Order)

	offset, end := pageBounds(q.Page, q.PageSize, len(visible))

	rows := make([]types.TableRow, 0, end-offset)
	for i := offset; i < end; i++ {
		rows = append(rows, types.NewTableRow(i, visible[i], perms))
	}

	return &types.ListResponse[types.TableRow]{
		Rows: rows,
		Pagination: types.PaginationResponse{
			Total:  len(visible),
			Page:   q.Page,
			Limit:  q.PageSize,
			Offset: offset,
		},
	}, nil
}

// GetSchedule retrieves a schedule by ID
func (s *Schedule) GetSchedule(ctx context.Context, id uint) (*models.Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateSchedule validates the request and stores a new schedule.
// A schedule starts disabled unless the request enables it.
func (s *Schedule) CreateSchedule(ctx context.Context, req types.ScheduleRequest) (*models.Schedule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	sched := &models.Schedule{}
	req.Apply(sched)
	if err := s.repo.Create(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	logger.InfoWithFields("schedule created", map[string]interface{}{
		"schedule_id": sched.ID,
		"name":        sched.Name,
		"is_active":   sched.IsActive,
	})
	s.publish(events.EventScheduleCreated, sched.ID, sched.Name, sched.IsActive)
	return sched, nil
}

// UpdateSchedule replaces the editable fields of a schedule
func (s *Schedule) UpdateSchedule(ctx context.Context, id uint, req types.ScheduleRequest) (*models.Schedule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, req.Name, id); err != nil {
		return nil, err
	}

	req.Apply(sched)
	if err := s.repo.Update(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.InfoWithFields("schedule updated", map[string]interface{}{
		"schedule_id": sched.ID,
		"name":        sched.Name,
	})
	s.publish(events.EventScheduleUpdated, sched.ID, sched.Name, sched.IsActive)
	return sched, nil
}

// SetActive enables or disables a schedule
func (s *Schedule) SetActive(ctx context.Context, id uint, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}

	logger.InfoWithFields("schedule toggled", map[string]interface{}{
		"schedule_id": id,
		"is_active":   active,
	})
	s.publish(events.EventScheduleToggled, id, "", active)
	return nil
}

// DeleteSchedule removes a schedule together with its run history
func (s *Schedule) DeleteSchedule(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.InfoWithFields("schedule deleted", map[string]interface{}{"schedule_id": id})
	s.publish(events.EventScheduleDeleted, id, "", false)
	return nil
}

// RunNow executes a schedule once on demand, whether or not it is active.
// The result is returned to the caller and is not recorded.
func (s *Schedule) RunNow(ctx context.Context, id uint) (*types.RunResult, error) {
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.execute(ctx, *sched, types.RunTriggerManual)
	return &res, nil
}

// RunScheduled executes a schedule from its trigger. Disabled schedules are skipped
// and return nil. The outcome is stored as history and as the schedule's latest run.
func (s *Schedule) RunScheduled(ctx context.Context, id uint) (*types.RunResult, error) {
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sched.IsActive {
		logger.Debugf("Skipping run of disabled schedule %d", id)
		return nil, nil
	}

	res := s.execute(ctx, *sched, types.RunTriggerScheduled)

	runAt, err := time.ParseInLocation(types.RunTimeLayout, res.RunTime, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run time: %w", err)
	}
	history := &models.ScheduleHistory{
		ScheduleID: sched.ID,
		RunID:      res.RunID,
		Status:     res.Status,
		Output:     res.Output,
		Duration:   res.Duration,
		RunAt:      runAt,
	}
	if err := s.repo.RecordRun(ctx, history); err != nil {
		return nil, err
	}
	return &res, nil
}

// History lists the recorded runs of a schedule, newest first
func (s *Schedule) History(ctx context.Context, id uint, opts *models.ListOptions) ([]types.RunResult, int64, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}

	items, err := s.historyRepo.ListBySchedule(ctx, id, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.historyRepo.Count(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	out := make([]types.RunResult, 0, len(items))
	for _, h := range items {
		out = append(out, types.NewHistoryItem(h, now))
	}
	return out, total, nil
}

// LatestRun returns the most recent recorded run of a schedule
func (s *Schedule) LatestRun(ctx context.Context, id uint) (*types.RunResult, error) {
	h, err := s.historyRepo.Latest(ctx, id)
	if err != nil {
		return nil, err
	}
	item := types.NewHistoryItem(*h, s.now())
	return &item, nil
}

func (s *Schedule) execute(ctx context.Context, sched models.Schedule, trigger types.RunTrigger) types.RunResult {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	startedAt := s.now()
	out := s.executor.Run(runCtx, sched)

	fields := map[string]interface{}{
		"schedule_id": sched.ID,
		"name":        sched.Name,
		"type":        sched.Type,
		"trigger":     trigger,
		"status":      out.Status.String(),
		"duration":    out.Duration.String(),
	}
	if out.Status == models.RunStatusSucceeded {
		logger.InfoWithFields("schedule run finished", fields)
	} else {
		logger.WarnWithFields("schedule run finished", fields)
	}
	metrics.ObserveRun(string(sched.Type), out.Status.String(), string(trigger), out.Duration)

	return types.RunResult{
		RunID:        uuid.NewString(),
		ScheduleID:   sched.ID,
		Trigger:      trigger,
		Status:       out.Status,
		StatusAlias:  out.Status.Alias(),
		Output:       out.Output,
		Duration:     out.Duration.Seconds(),
		RunTime:      types.FormatRunTime(startedAt),
		RunTimeAlias: types.HumanizeRunTime(startedAt, s.now()),
	}
}

// pageBounds returns the [offset, end) slice of total rows shown on page.
// Pages past the last one are empty.
func pageBounds(page, pageSize, total int) (int, int) {
	pages := (total + pageSize - 1) / pageSize
	if page < 1 || page > pages {
		return total, total
	}
	offset := (page - 1) * pageSize
	end := offset + pageSize
	if end > total {
		end = total
	}
	return offset, end
}

func (s *Schedule) checkNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: %s", ErrScheduleExists, name)
	}
	return nil
}

func (s *Schedule) publish(eventType events.EventType, id uint, name string, active bool) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{Type: eventType, ScheduleID: id, Name: name, IsActive: active})
}
