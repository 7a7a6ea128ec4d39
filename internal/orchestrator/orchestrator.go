package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"campusEvents/internal/config"
	"campusEvents/internal/halls"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"

	"github.com/google/uuid"
)

// JobKind определяет шаг пайплайна, который выполняет джоба.
type JobKind string

const (
	// JobEnrich - подбор зала и AI-сводка для поданного предложения
	JobEnrich JobKind = "enrich"
	// JobMaterialize - создание черновика события для одобренного предложения
	JobMaterialize JobKind = "materialize"
)

const defaultJobTimeout = 2 * time.Minute

var (
	ErrShuttingDown = errors.New("service is shutting down")
	ErrBufferFull   = errors.New("job buffer is full")
	ErrUnknownJob   = errors.New("unknown job kind")
)

// Repository — хранилище предложений, которое нужно оркестратору.
type Repository interface {
	FindProposalByID(ctx context.Context, id uuid.UUID) (domain.Proposal, error)
	MarkWorkflowAttempt(ctx context.Context, id uuid.UUID) (int, error)
	SaveWorkflowResult(ctx context.Context, proposal domain.Proposal) error
	CreateEventFromProposal(ctx context.Context, proposalID uuid.UUID, build func(domain.Proposal) domain.Event) (uuid.UUID, error)
	FindStalledProposals(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	FindApprovedWithoutEvent(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}

// HallSelector подбирает зал для предложения.
type HallSelector interface {
	Select(ctx context.Context, req halls.Requirements) halls.Result
}

// Summarizer пишет AI-сводку предложения для администратора.
type Summarizer interface {
	SummarizeProposal(ctx context.Context, p domain.Proposal, halls *domain.HallAvailability) (domain.AISummary, error)
}

// Notifier получает каждое предложение, обогащение которого завершилось.
type Notifier interface {
	NotifyProposal(ctx context.Context, p domain.Proposal)
}

// jobKey идентифицирует джобу для защиты от дублей.
type jobKey struct {
	kind       JobKind
	proposalID uuid.UUID
}

// Job — один шаг пайплайна в очереди. Канал Done закрывается, когда шаг
// завершён, включая запланированные повторы.
type Job struct {
	kind       JobKind
	proposalID uuid.UUID
	attempt    int
	Done       chan struct{}
}

// Orchestrator выполняет пайплайн предложений на пуле воркеров:
// обогащение (Step A) после подачи, создание события (Step B) после одобрения.
type Orchestrator struct {
	logger     *slog.Logger
	cfg        config.WorkflowConfig
	jobTimeout time.Duration
	repository Repository
	selector   HallSelector
	summarizer Summarizer
	retry      *retryPolicy

	notifierMu sync.RWMutex
	notifier   Notifier

	mu       sync.Mutex
	inflight map[jobKey]chan struct{}

	jobs            chan Job
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownChannel chan struct{}
	shutdownOnce    sync.Once
	wg              *sync.WaitGroup

	now func() time.Time
}

// New создаёт новый экземпляр Orchestrator.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	repository Repository,
	selector HallSelector,
	summarizer Summarizer,
) *Orchestrator {
	op := "Orchestrator.New()"
	log := logger.With(slog.String("op", op))
	log.Info("creating proposal workflow",
		slog.Int("workers", cfg.Workflow.WorkersCount),
		slog.Int("buffer", cfg.Workflow.JobBufferSize),
		slog.Int("max_attempts", cfg.Workflow.MaxAttempts),
	)

	jobTimeout := cfg.AI.GetTimeout()
	if jobTimeout <= 0 {
		jobTimeout = defaultJobTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		logger:          logger,
		cfg:             cfg.Workflow,
		jobTimeout:      jobTimeout,
		repository:      repository,
		selector:        selector,
		summarizer:      summarizer,
		retry:           newRetryPolicy(cfg.Workflow.MaxAttempts, cfg.Workflow.RetryBaseDelay),
		inflight:        make(map[jobKey]chan struct{}),
		jobs:            make(chan Job, cfg.Workflow.JobBufferSize),
		ctx:             ctx,
		cancel:          cancel,
		shutdownChannel: make(chan struct{}),
		wg:              &sync.WaitGroup{},
		now:             time.Now,
	}
}

// SetNotifier подключает канал модерации. Можно вызывать после Start.
func (o *Orchestrator) SetNotifier(n Notifier) {
	o.notifierMu.Lock()
	o.notifier = n
	o.notifierMu.Unlock()
}

// Start запускает воркеры и свипер. Метод блокируется до их остановки.
func (o *Orchestrator) Start() {
	op := "Orchestrator.Start()"
	log := o.logger.With(slog.String("op", op))

	workers := max(o.cfg.WorkersCount, 1)
	for i := 0; i < workers; i++ {
		o.wg.Add(1)
		go o.handleJob(i)
	}

	if o.cfg.SweepInterval > 0 {
		o.wg.Add(1)
		go o.sweepLoop()
	} else {
		log.Warn("sweeper disabled")
	}

	log.Info("proposal workflow started")
	o.wg.Wait()
}

// AddJob добавляет шаг для предложения в очередь. Если такой шаг уже в
// очереди или выполняется, повторно он не ставится: возвращается его Done.
func (o *Orchestrator) AddJob(kind JobKind, proposalID uuid.UUID) (chan struct{}, error) {
	if kind != JobEnrich && kind != JobMaterialize {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, kind)
	}

	key := jobKey{kind: kind, proposalID: proposalID}

	o.mu.Lock()
	defer o.mu.Unlock()

	if done, ok := o.inflight[key]; ok {
		return done, nil
	}

	job := Job{
		kind:       kind,
		proposalID: proposalID,
		attempt:    1,
		Done:       make(chan struct{}),
	}
	if err := o.enqueue(job); err != nil {
		return nil, err
	}

	o.inflight[key] = job.Done
	return job.Done, nil
}

// enqueue кладёт джобу в канал. При полном буфере возвращает ErrBufferFull.
func (o *Orchestrator) enqueue(job Job) error {
	select {
	case <-o.shutdownChannel:
		return ErrShuttingDown
	default:
	}

	select {
	case o.jobs <- job:
		return nil
	default:
		return ErrBufferFull
	}
}

// finish снимает отметку о выполнении и закрывает Done.
func (o *Orchestrator) finish(job Job) {
	o.mu.Lock()
	delete(o.inflight, jobKey{kind: job.kind, proposalID: job.proposalID})
	o.mu.Unlock()
	close(job.Done)
}

// handleJob — воркер, обрабатывающий джобы из канала.
func (o *Orchestrator) handleJob(id int) {
	defer o.wg.Done()
	op := "Orchestrator.handleJob()"
	log := o.logger.With(
		slog.String("op", op),
		slog.Int("workerId", id),
	)

	log.Debug("start workflow job handler")

	for {
		select {
		case <-o.shutdownChannel:
			return
		case job, ok := <-o.jobs:
			if !ok {
				log.Error("jobs channel closed")
				return
			}

			joblog := log.With(
				slog.String("kind", string(job.kind)),
				slog.String("proposal_id", job.proposalID.String()),
				slog.Int("attempt", job.attempt),
			)

			var err error
			switch job.kind {
			case JobEnrich:
				err = o.runEnrich(joblog, job)
			case JobMaterialize:
				err = o.runMaterialize(joblog, job)
			}

			if err == nil {
				o.finish(job)
				continue
			}

			retry, delay := o.retry.shouldRetry(job.attempt, err)
			if !retry {
				joblog.Error("workflow step gave up", sl.Err(err))
				o.finish(job)
				continue
			}

			joblog.Warn("workflow step failed, retrying", sl.Err(err), slog.Duration("delay", delay))
			o.scheduleRetry(joblog, job, delay)
		}
	}
}

// scheduleRetry возвращает джобу в очередь после задержки.
func (o *Orchestrator) scheduleRetry(log *slog.Logger, job Job, delay time.Duration) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		select {
		case <-o.shutdownChannel:
			o.finish(job)
			return
		case <-time.After(delay):
		}

		job.attempt++
		if err := o.enqueue(job); err != nil {
			log.Error("cannot requeue workflow step, leaving it to the sweeper", sl.Err(err))
			o.finish(job)
		}
	}()
}

// runEnrich — Step A. Ошибку возвращает только когда шаг нужно повторить,
// финальный результат сохраняется в предложении.
func (o *Orchestrator) runEnrich(log *slog.Logger, job Job) error {
	ctx, cancel := context.WithTimeout(o.ctx, o.jobTimeout)
	defer cancel()

	attempts, err := o.repository.MarkWorkflowAttempt(ctx, job.proposalID)
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		log.Debug("enrichment already finished")
		return nil
	case domain.IsNotFound(err):
		log.Warn("proposal vanished before enrichment", sl.Err(err))
		return nil
	case err != nil:
		return err
	}

	proposal, err := o.repository.FindProposalByID(ctx, job.proposalID)
	if err != nil {
		if domain.IsNotFound(err) {
			log.Warn("proposal vanished before enrichment", sl.Err(err))
			return nil
		}
		return err
	}
	if !proposal.CanRecordWorkflow() {
		return nil
	}

	availability, summary, err := o.enrich(ctx, proposal)
	if err == nil {
		if err := proposal.CompleteWorkflow(availability, &summary, o.now()); err != nil {
			return nil
		}
		return o.saveEnrichment(ctx, log, proposal)
	}

	if o.shuttingDown() {
		log.Info("enrichment interrupted by shutdown, left pending")
		return nil
	}
	if attempts < o.cfg.MaxAttempts && o.retry.retryable(err) {
		return err
	}

	log.Error("enrichment failed", sl.Err(err), slog.Int("attempts", attempts))
	if ferr := proposal.FailWorkflow(err.Error(), o.now()); ferr != nil {
		return nil
	}
	// контекст шага мог уже завершиться, но ошибку нужно сохранить
	saveCtx, saveCancel := context.WithTimeout(context.Background(), o.jobTimeout)
	defer saveCancel()
	return o.saveEnrichment(saveCtx, log, proposal)
}

// enrich подбирает зал и получает AI-сводку.
func (o *Orchestrator) enrich(ctx context.Context, p domain.Proposal) (*domain.HallAvailability, domain.AISummary, error) {
	op := "Orchestrator.enrich()"

	result := o.selector.Select(ctx, halls.Requirements{
		EventType:          p.Category,
		ParticipantCount:   p.ExpectedAttendees,
		FacilitiesRequired: p.FacilitiesRequired,
		EventDate:          p.PreferredDate,
		EventDuration:      p.DurationHours,
	})

	availability := &domain.HallAvailability{
		AvailableHalls:       halls.Names(),
		RecommendedHall:      result.Recommendation,
		HallSelectionSuccess: result.Success,
	}

	summary, err := o.summarizer.SummarizeProposal(ctx, p, availability)
	if err != nil {
		return nil, domain.AISummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return availability, summary, nil
}

// saveEnrichment сохраняет результат обогащения и уведомляет модераторов.
// Устаревший результат отбрасывается.
func (o *Orchestrator) saveEnrichment(ctx context.Context, log *slog.Logger, p domain.Proposal) error {
	if err := o.repository.SaveWorkflowResult(ctx, p); err != nil {
		if errors.Is(err, domain.ErrInvalidState) || domain.IsNotFound(err) {
			log.Warn("enrichment result discarded", sl.Err(err))
			return nil
		}
		return err
	}

	log.Info("enrichment finished", slog.String("workflow_status", string(p.WorkflowStatus)))
	o.notify(ctx, p)
	return nil
}

// runMaterialize — Step B. Повторный запуск после успеха ничего не делает.
func (o *Orchestrator) runMaterialize(log *slog.Logger, job Job) error {
	ctx, cancel := context.WithTimeout(o.ctx, o.jobTimeout)
	defer cancel()

	eventID, err := o.repository.CreateEventFromProposal(ctx, job.proposalID, func(p domain.Proposal) domain.Event {
		return p.ToEvent(uuid.New(), o.now())
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) || domain.IsNotFound(err) {
			log.Warn("proposal cannot be materialized", sl.Err(err))
			return nil
		}
		return err
	}

	log.Info("event materialized", slog.String("event_id", eventID.String()))
	return nil
}

// notify передаёт предложение в Notifier, если он подключён.
func (o *Orchestrator) notify(ctx context.Context, p domain.Proposal) {
	o.notifierMu.RLock()
	n := o.notifier
	o.notifierMu.RUnlock()

	if n != nil {
		n.NotifyProposal(ctx, p)
	}
}

// sweepLoop периодически запускает Sweep до завершения работы.
func (o *Orchestrator) sweepLoop() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.shutdownChannel:
			return
		case <-ticker.C:
			o.Sweep(o.ctx)
		}
	}
}

// Sweep возвращает в очередь работу, потерянную при рестарте или переполнении
// буфера: обогащение, ожидающее дольше StaleAfter, и одобренные предложения
// без события.
func (o *Orchestrator) Sweep(ctx context.Context) {
	op := "Orchestrator.Sweep()"
	log := o.logger.With(slog.String("op", op))

	before := o.now().Add(-o.cfg.StaleAfter)

	stalled, err := o.repository.FindStalledProposals(ctx, before)
	if err != nil {
		log.Error("cannot list stalled proposals", sl.Err(err))
	}
	unmaterialized, err := o.repository.FindApprovedWithoutEvent(ctx, before)
	if err != nil {
		log.Error("cannot list approved proposals without event", sl.Err(err))
	}

	requeue := func(kind JobKind, ids []uuid.UUID) {
		for _, id := range ids {
			if _, err := o.AddJob(kind, id); err != nil {
				log.Warn("cannot requeue proposal", sl.Err(err),
					slog.String("kind", string(kind)), slog.String("proposal_id", id.String()))
				return
			}
		}
	}
	requeue(JobEnrich, stalled)
	requeue(JobMaterialize, unmaterialized)

	if len(stalled)+len(unmaterialized) > 0 {
		log.Info("sweep requeued proposals",
			slog.Int("enrich", len(stalled)),
			slog.Int("materialize", len(unmaterialized)),
		)
	}
}

// shuttingDown сообщает, начато ли завершение работы.
func (o *Orchestrator) shuttingDown() bool {
	select {
	case <-o.shutdownChannel:
		return true
	default:
		return false
	}
}

// Shutdown корректно завершает оркестратор: перестаёт принимать джобы,
// отменяет текущие шаги и ждёт воркеры. Джобы из очереди остаются pending в
// базе до следующего запуска.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.shutdownOnce.Do(func() {
		close(o.shutdownChannel)
		o.cancel()
	})

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("force exit workflow: %w", ctx.Err())
	}
}
