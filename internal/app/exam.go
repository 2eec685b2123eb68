package app

import (
	"math/rand/v2"
	"sync"
	"time"

	"ccse-study-service/internal/domain"
	"github.com/google/uuid"
)

// PassThreshold is the minimum number of correct answers for a passing exam.
const PassThreshold = 15

// DefaultDistribution mirrors the official exam: 25 questions weighted towards task 1.
var DefaultDistribution = domain.Distribution{
	{Task: 1, Count: 10},
	{Task: 2, Count: 3},
	{Task: 3, Count: 2},
	{Task: 4, Count: 3},
	{Task: 5, Count: 7},
}

// TaskSource exposes the catalog tasks an exam is drawn from.
type TaskSource interface {
	Task(id domain.TaskID) (domain.Task, bool)
}

// Generator draws stratified random exam sets. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	now   func() time.Time
	newID func() string
}

func NewGenerator() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewGeneratorWithSource(rand.NewPCG(seed, rand.Uint64()))
}

// NewGeneratorWithSource is used by tests that need a reproducible draw.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{
		rnd:   rand.New(src),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Generate samples min(count, available) questions per quota, in distribution order.
// Unknown tasks and non-positive counts contribute nothing. Topics stay grouped.
func (g *Generator) Generate(tasks TaskSource, dist domain.Distribution) domain.ExamSet {
	set := domain.ExamSet{
		ID:          g.newID(),
		Questions:   make([]domain.Question, 0, dist.Total()),
		Composition: make(domain.Distribution, 0, len(dist)),
		CreatedAt:   g.now(),
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, quota := range dist {
		task, ok := tasks.Task(quota.Task)
		if !ok {
			continue
		}
		n := quota.Count
		if n > len(task.Questions) {
			n = len(task.Questions)
		}
		if n <= 0 {
			set.Composition = append(set.Composition, domain.Quota{Task: quota.Task})
			continue
		}
		perm := g.rnd.Perm(len(task.Questions))
		for _, idx := range perm[:n] {
			set.Questions = append(set.Questions, task.Questions[idx])
		}
		set.Composition = append(set.Composition, domain.Quota{Task: quota.Task, Count: n})
	}
	return set
}
