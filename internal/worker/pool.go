package worker

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull is returned by SubmitJob when every queue slot is taken.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned by SubmitJob once Stop has been called.
	ErrStopped = errors.New("dispatcher is stopped")
)

// Job represents a unit of work to be executed.
type Job interface {
	Execute() error // The method that performs the actual work
	ID() string     // A unique identifier for the job
}

// Canceler is implemented by jobs that must be told when they will never run.
type Canceler interface {
	Cancel(err error)
}

// Worker runs in its own goroutine and executes jobs handed to it through JobChannel.
type Worker struct {
	ID         int
	WorkerPool chan chan Job // A pool of channels, used to register this worker's job channel
	JobChannel chan Job      // A channel specific to this worker, to receive jobs
	quit       <-chan struct{}
	wg         *sync.WaitGroup
	logger     logrus.FieldLogger
}

// NewWorker creates a new Worker.
func NewWorker(id int, workerPool chan chan Job, quit <-chan struct{}, wg *sync.WaitGroup, logger logrus.FieldLogger) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		quit:       quit,
		wg:         wg,
		logger:     logger.WithField("worker", id),
	}
}

// Start makes the Worker listen for jobs on its JobChannel until quit is closed. A job
// already running is always allowed to finish.
func (w Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			// Register the current worker's JobChannel to the worker pool.
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-w.quit:
				w.logger.Debug("Worker stopping")
				return
			}

			select {
			case job := <-w.JobChannel:
				w.run(job)
			case <-w.quit:
				w.logger.Debug("Worker stopping")
				return
			}
		}
	}()
}

func (w Worker) run(job Job) {
	log := w.logger.WithField("job_id", job.ID())
	log.Info("Started job")
	if err := job.Execute(); err != nil {
		log.WithError(err).Error("Error processing job")
		return
	}
	log.Info("Finished job")
}

// Dispatcher manages a fixed pool of workers fed from a bounded queue.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job // A pool of worker job channels
	JobQueue   chan Job      // A buffered channel for incoming jobs
	Workers    []Worker

	wg      sync.WaitGroup
	quit    chan struct{}
	done    chan struct{}
	mu      sync.RWMutex
	stopped bool
	logger  logrus.FieldLogger
}

// NewDispatcher creates a new Dispatcher. Non-positive sizes are raised to one.
func NewDispatcher(maxWorkers, jobQueueSize int, logger logrus.FieldLogger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if jobQueueSize < 1 {
		jobQueueSize = 1
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the dispatcher and its workers.
func (d *Dispatcher) Run() {
	d.logger.WithField("workers", d.MaxWorkers).Info("Dispatcher starting")
	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d.WorkerPool, d.quit, &d.wg, d.logger)
		d.Workers = append(d.Workers, worker)
		worker.Start()
	}

	go d.dispatch()
}

// dispatch hands each queued job to the next idle worker. It holds at most one job while
// waiting, so the queue capacity is the real bound on pending work.
func (d *Dispatcher) dispatch() {
	defer close(d.done)
	for {
		select {
		case job := <-d.JobQueue:
			select {
			case jobChannel := <-d.WorkerPool:
				select {
				case jobChannel <- job:
				case <-d.quit:
					d.cancel(job)
					return
				}
			case <-d.quit:
				d.cancel(job)
				return
			}
		case <-d.quit:
			return
		}
	}
}

// SubmitJob adds a job to the queue without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.JobQueue <- job:
		d.logger.WithField("job_id", job.ID()).Debug("Job submitted to queue")
		return nil
	default:
		d.logger.WithField("job_id", job.ID()).Warn("Job queue full, job rejected")
		return ErrQueueFull
	}
}

// Stop waits for running jobs to finish and cancels the ones still queued. It is safe to
// call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.quit)
	d.mu.Unlock()

	d.logger.Info("Dispatcher: Initiating shutdown...")
	d.wg.Wait()
	if len(d.Workers) > 0 {
		<-d.done
	}

	for {
		select {
		case job := <-d.JobQueue:
			d.cancel(job)
		default:
			d.logger.Info("Dispatcher: Shutdown complete.")
			return
		}
	}
}

func (d *Dispatcher) cancel(job Job) {
	d.logger.WithField("job_id", job.ID()).Warn("Job dropped at shutdown")
	if c, ok := job.(Canceler); ok {
		c.Cancel(ErrStopped)
	}
}
