package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeRefreshFeeds)

	if task.ID == "" {
		t.Error("Expected task ID to be set")
	}
	if task.Type != TaskTypeRefreshFeeds {
		t.Errorf("Expected type %q, got %q", TaskTypeRefreshFeeds, task.Type)
	}
	if task.RetryCount != 0 {
		t.Errorf("Expected retry count 0, got %d", task.RetryCount)
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}

func TestNewTaskUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task := NewTask(TaskTypeSweepExpired)
		if seen[task.ID] {
			t.Fatalf("Duplicate task ID %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestTaskRetries(t *testing.T) {
	task := NewTask(TaskTypeRefreshFunding)

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries exhausted after max attempts")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeRefreshFeeds)

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() < 10*time.Millisecond {
		t.Errorf("Expected duration of at least 10ms, got %v", task.GetDuration())
	}
}
