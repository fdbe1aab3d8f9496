package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/list"
)

const kind = "queue"

// QueueConfig configures a queue
type QueueConfig struct {
	Name     string `json:"name" yaml:"name"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// DefaultQueueConfig returns sensible defaults
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		Capacity: 1024,
	}
}

// Validate checks configuration
func (c *QueueConfig) Validate() error {
	if c.Name == "" {
		return errors.New("queue: name is required")
	}
	if c.Capacity < 0 || c.Capacity > container.MaxCapacity {
		return fmt.Errorf("queue: capacity %d out of range", c.Capacity)
	}
	return nil
}

// ApplyDefaults fills in default values
func (c *QueueConfig) ApplyDefaults() {
	if c.Capacity == 0 {
		c.Capacity = DefaultQueueConfig().Capacity
	}
}

// Queue is a bounded FIFO of byte payloads backed by a singly linked list.
// Enqueue appends at the back, Dequeue removes from the front, both O(1).
type Queue struct {
	Name    string
	storage *list.List
	mu      sync.Mutex
}

// New creates a standalone queue. The queue name is attached to every log
// line of the underlying list.
func New(config *QueueConfig, opts *container.Options) (*Queue, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.ApplyDefaults()

	o := container.Resolve(opts)
	o.Logger = o.Logger.With(zap.String("queue", config.Name))

	l, err := list.New(config.Capacity, &o)
	if err != nil {
		return nil, err
	}
	return &Queue{Name: config.Name, storage: l}, nil
}

func nullErr(op string) error {
	return container.WrapError(kind, op, container.ErrQueueNull)
}

// Enqueue stores a copy of data at the back.
func (q *Queue) Enqueue(data []byte) error {
	if q == nil {
		return nullErr("enqueue")
	}
	return q.storage.InsertLast(data)
}

// Dequeue removes the front element and hands its buffer to the caller.
func (q *Queue) Dequeue() ([]byte, error) {
	if q == nil {
		return nil, nullErr("dequeue")
	}
	return q.storage.ExtractFirst()
}

// Front returns the oldest element by reference.
func (q *Queue) Front() ([]byte, error) {
	if q == nil {
		return nil, nullErr("front")
	}
	return q.storage.First()
}

// Back returns the newest element by reference.
func (q *Queue) Back() ([]byte, error) {
	if q == nil {
		return nil, nullErr("back")
	}
	return q.storage.Last()
}

func (q *Queue) Length() int {
	if q == nil {
		return 0
	}
	return q.storage.Length()
}

func (q *Queue) Capacity() int {
	if q == nil {
		return 0
	}
	return q.storage.Capacity()
}

func (q *Queue) IsEmpty() bool {
	return q.Length() == 0
}

func (q *Queue) IsFull() bool {
	if q == nil {
		return false
	}
	return q.storage.IsFull()
}

// Resize changes the capacity. Shrinking drops the newest elements.
func (q *Queue) Resize(capacity int) error {
	if q == nil {
		return nullErr(container.OpResize)
	}
	return q.storage.Resize(capacity)
}

func (q *Queue) Reset() error {
	if q == nil {
		return nullErr(container.OpReset)
	}
	return q.storage.Reset()
}

// Concat enqueues copies of the elements of src, oldest first, and raises
// the capacity by the capacity of src.
func (q *Queue) Concat(src *Queue) error {
	if q == nil || src == nil {
		return nullErr(container.OpConcat)
	}
	return q.storage.Concat(src.storage)
}

// Destroy releases every element and the storage.
func (q *Queue) Destroy() error {
	if q == nil {
		return nullErr(container.OpDestroy)
	}
	return q.storage.Destroy()
}

// Print writes the queue front to back
func (q *Queue) Print(w io.Writer) {
	var l *list.List
	if q != nil {
		l = q.storage
	}
	l.Print(w)
}

// QueueStats contains queue statistics
type QueueStats struct {
	Length   int
	Capacity int
}

// ManagerConfig configures the queue manager
type ManagerConfig struct {
	MaxQueues int
	Options   *container.Options
}

// QueueManager owns a set of named queues and serializes access to each.
type QueueManager struct {
	config *ManagerConfig
	queues map[string]*Queue
	mu     sync.RWMutex
}

// NewQueueManager creates a new queue manager
func NewQueueManager(config *ManagerConfig) *QueueManager {
	if config == nil {
		config = &ManagerConfig{MaxQueues: 1000}
	}
	return &QueueManager{
		config: config,
		queues: make(map[string]*Queue),
	}
}

// CreateQueue creates a new queue
func (m *QueueManager) CreateQueue(config *QueueConfig) (*Queue, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.queues[config.Name]; exists {
		return nil, fmt.Errorf("queue: %s already exists", config.Name)
	}
	if m.config.MaxQueues > 0 && len(m.queues) >= m.config.MaxQueues {
		return nil, fmt.Errorf("queue: limit of %d queues reached", m.config.MaxQueues)
	}

	q, err := New(config, m.config.Options)
	if err != nil {
		return nil, err
	}
	m.queues[config.Name] = q
	return q, nil
}

// DeleteQueue destroys a queue and forgets it
func (m *QueueManager) DeleteQueue(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, exists := m.queues[name]
	if !exists {
		return fmt.Errorf("queue: %s not found", name)
	}
	delete(m.queues, name)

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.Destroy()
}

// GetQueue returns a queue by name
func (m *QueueManager) GetQueue(name string) *Queue {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queues[name]
}

// ListQueues returns the queue names in order
func (m *QueueManager) ListQueues() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.queues))
	for name := range m.queues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *QueueManager) lookup(name string) (*Queue, error) {
	q := m.GetQueue(name)
	if q == nil {
		return nil, fmt.Errorf("queue: %s not found", name)
	}
	return q, nil
}

// Enqueue adds a payload to a named queue
func (m *QueueManager) Enqueue(ctx context.Context, queueName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q, err := m.lookup(queueName)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.Enqueue(data)
}

// EnqueueBatch adds payloads in order, stopping at the first failure. It
// returns how many were enqueued.
func (m *QueueManager) EnqueueBatch(ctx context.Context, queueName string, batch [][]byte) (int, error) {
	q, err := m.lookup(queueName)
	if err != nil {
		return 0, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for i, data := range batch {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := q.Enqueue(data); err != nil {
			return i, err
		}
	}
	return len(batch), nil
}

// Dequeue removes the oldest payload of a named queue
func (m *QueueManager) Dequeue(ctx context.Context, queueName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err := m.lookup(queueName)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.Dequeue()
}

// DequeueBatch removes up to maxItems payloads. An empty queue ends the
// batch without an error.
func (m *QueueManager) DequeueBatch(ctx context.Context, queueName string, maxItems int) ([][]byte, error) {
	q, err := m.lookup(queueName)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([][]byte, 0, min(maxItems, q.Length()))
	for len(out) < maxItems && !q.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		data, err := q.Dequeue()
		if err != nil {
			return out, err
		}
		out = append(out, data)
	}
	return out, nil
}

// GetQueueStats returns queue statistics
func (m *QueueManager) GetQueueStats(name string) *QueueStats {
	q := m.GetQueue(name)
	if q == nil {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return &QueueStats{
		Length:   q.Length(),
		Capacity: q.Capacity(),
	}
}
