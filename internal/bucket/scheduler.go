package bucket

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/history"
)

// TaskFinder loads tasks by their ids.
type TaskFinder interface {
	FindTasks(ctx context.Context, taskIDs []int64) ([]card.Task, error)
}

// Scheduler partitions a task pool into buckets and selects the tasks of the next round.
type Scheduler struct {
	history history.Repository
	tasks   TaskFinder
	policy  Policy
	rnd     *rand.Rand
	now     func() time.Time
}

// NewScheduler creates a new Scheduler. rnd may be nil, in which case a time seeded source is used.
func NewScheduler(historyRepository history.Repository, tasks TaskFinder, policy Policy, rnd *rand.Rand) *Scheduler {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{
		history: historyRepository,
		tasks:   tasks,
		policy:  policy,
		rnd:     rnd,
		now:     time.Now,
	}
}

// LoadBuckets classifies the tasks into numBuckets buckets by their recent history.
// Ids that do not resolve to a task are skipped.
func (s *Scheduler) LoadBuckets(ctx context.Context, taskIDs []int64, numBuckets int) ([][]TaskWithHistory, error) {
	if numBuckets < 1 {
		return nil, fmt.Errorf("%w: at least one bucket is required", ErrInvalidDescription)
	}

	tasks, err := s.tasks.FindTasks(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("tasks.FindTasks() > %w", err)
	}
	records, err := s.history.FetchRecent(ctx, taskIDs, numBuckets)
	if err != nil {
		return nil, fmt.Errorf("history.FetchRecent() > %w", err)
	}

	buckets := make([][]TaskWithHistory, numBuckets)
	for _, task := range tasks {
		twh := TaskWithHistory{
			Task:    task,
			History: records[task.ID],
		}
		if len(twh.History) > 0 {
			twh.LastRepeated = twh.History[0].Time
		}
		idx := Number(twh.History, numBuckets-1)
		buckets[idx] = append(buckets[idx], twh)
	}
	return buckets, nil
}

// SelectTasksToRepeat picks the tasks of one round, ordered by the time they were last repeated.
func (s *Scheduler) SelectTasksToRepeat(buckets [][]TaskWithHistory, desc Description) []TaskWithHistory {
	now := s.now().Unix()
	queue := s.newFolderQueue(buckets)

	var result []TaskWithHistory
	for i, bucket := range buckets {
		if i >= desc.Len() {
			break
		}
		eligible := make([]TaskWithHistory, 0, len(bucket))
		for _, t := range bucket {
			if now-t.LastRepeated >= desc.Delays[i] {
				eligible = append(eligible, t)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		s.rnd.Shuffle(len(eligible), func(a, b int) {
			eligible[a], eligible[b] = eligible[b], eligible[a]
		})
		sort.SliceStable(eligible, func(a, b int) bool {
			return eligible[a].LastRepeated < eligible[b].LastRepeated
		})
		if i == 0 {
			slices.Reverse(eligible)
		}

		count := s.policy.pickCount(i, len(buckets), desc.Weights[i])
		picked := s.selectRandomTasksFromBeginning(eligible, count, queue)
		slog.Debug("selected tasks from bucket", "bucket", i, "eligible", len(eligible), "picked", len(picked))
		result = append(result, picked...)
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].LastRepeated < result[b].LastRepeated
	})
	return result
}

// NextRound loads the buckets of the pool and selects the next round from them.
func (s *Scheduler) NextRound(ctx context.Context, taskIDs []int64, desc Description) ([]TaskWithHistory, error) {
	buckets, err := s.LoadBuckets(ctx, taskIDs, desc.Len())
	if err != nil {
		return nil, err
	}
	return s.SelectTasksToRepeat(buckets, desc), nil
}

// selectRandomTasksFromBeginning picks up to maxCount tasks near the front of sorted,
// preferring the folders at the head of the queue.
func (s *Scheduler) selectRandomTasksFromBeginning(sorted []TaskWithHistory, maxCount int, queue *folderQueue) []TaskWithHistory {
	pool := slices.Clone(sorted)
	var result []TaskWithHistory
	for len(result) < maxCount && len(pool) > 0 {
		front := pool[:s.policy.frontSliceWidth(len(pool))]

		idx := -1
		for _, folderID := range queue.folders {
			var candidates []int
			for i, t := range front {
				if t.Task.FolderID == folderID {
					candidates = append(candidates, i)
				}
			}
			if len(candidates) > 0 {
				idx = candidates[s.rnd.Intn(len(candidates))]
				break
			}
		}
		if idx < 0 {
			idx = s.rnd.Intn(len(front))
		}

		picked := pool[idx]
		pool = slices.Delete(pool, idx, idx+1)
		result = append(result, picked)
		queue.moveToBack(picked.Task.FolderID)
	}
	return result
}

// folderQueue orders folders by preference, the most starved first.
type folderQueue struct {
	folders []int64
}

func (s *Scheduler) newFolderQueue(buckets [][]TaskWithHistory) *folderQueue {
	oldest := make(map[int64]int64)
	for _, bucket := range buckets {
		for _, t := range bucket {
			last, ok := oldest[t.Task.FolderID]
			if !ok || t.LastRepeated < last {
				oldest[t.Task.FolderID] = t.LastRepeated
			}
		}
	}

	folders := make([]int64, 0, len(oldest))
	for folderID := range oldest {
		folders = append(folders, folderID)
	}
	// deterministic order before the seeded shuffle
	slices.Sort(folders)
	s.rnd.Shuffle(len(folders), func(a, b int) {
		folders[a], folders[b] = folders[b], folders[a]
	})
	sort.SliceStable(folders, func(a, b int) bool {
		return oldest[folders[a]] < oldest[folders[b]]
	})
	return &folderQueue{folders: folders}
}

func (q *folderQueue) moveToBack(folderID int64) {
	if i := slices.Index(q.folders, folderID); i >= 0 {
		q.folders = slices.Delete(q.folders, i, i+1)
	}
	q.folders = append(q.folders, folderID)
}
