package gtasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/tasks/v1"

	"github.com/bepro-geeks/ai-butler/internal/timeutil"
)

const statusCompleted = "completed"

// Register inserts a task with no due date.
func (s *Service) Register(ctx context.Context, title string) (string, error) {
	listID, err := s.resolveTasklist(ctx)
	if err != nil {
		return "", err
	}

	if _, err := s.api.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}

	s.log.Info("task registered", zap.String("title", title))
	return fmt.Sprintf("タスク『%s』を登録しました。", title), nil
}

// RegisterWithDue inserts a task with a due date. A date-only value becomes
// start of day UTC; an unparseable value is reported to the user, not raised.
func (s *Service) RegisterWithDue(ctx context.Context, title, dueRaw string) (string, error) {
	due, err := timeutil.ParseDue(dueRaw)
	if err != nil {
		s.log.Warn("invalid due date", zap.String("due", dueRaw), zap.Error(err))
		return "期限の形式が正しくありません（例：2025-05-03）。", nil
	}

	listID, err := s.resolveTasklist(ctx)
	if err != nil {
		return "", err
	}

	if _, err := s.api.Tasks.Insert(listID, &tasks.Task{Title: title, Due: due}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}

	s.log.Info("task registered with due", zap.String("title", title), zap.String("due", due))
	return fmt.Sprintf("✅ タスク『%s』を登録しました（期限: %s）", title, timeutil.DueDate(due)), nil
}

// List renders the open tasks, skipping blank titles and zombie entries with
// impossibly old due dates.
func (s *Service) List(ctx context.Context) (string, error) {
	items, err := s.listAll(ctx, true, false)
	if err != nil {
		return "", err
	}

	if len(items) == 0 {
		return "現在、タスクは登録されていません。", nil
	}

	body := openTaskBullets(items)
	if body == "" {
		return "現在、タイトルのあるタスクは登録されていません。", nil
	}
	return "現在のタスク一覧です：\n" + body, nil
}

// ListCompleted renders the completed tasks, including hidden ones.
func (s *Service) ListCompleted(ctx context.Context) (string, error) {
	items, err := s.listAll(ctx, true, true)
	if err != nil {
		return "", err
	}

	body := completedTaskBullets(items)
	if body == "" {
		return "現在、完了済みのタスクはありません。", nil
	}
	return "✅ 完了済みのタスク一覧です：\n" + body, nil
}

// ListWithDue renders the open tasks that carry a due date.
func (s *Service) ListWithDue(ctx context.Context) (string, error) {
	items, err := s.listAll(ctx, true, false)
	if err != nil {
		return "", err
	}

	body := dueTaskBullets(items)
	if body == "" {
		return "現在、期限付きのタスクは登録されていません。", nil
	}
	return "期限付きタスク一覧：\n" + body, nil
}

// Complete marks the first open task with an exactly matching title as done.
func (s *Service) Complete(ctx context.Context, title string) (string, error) {
	listID, err := s.resolveTasklist(ctx)
	if err != nil {
		return "", err
	}

	list, err := s.api.Tasks.List(listID).ShowCompleted(false).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list tasks: %w", err)
	}

	for _, t := range list.Items {
		if strings.TrimSpace(t.Title) != title {
			continue
		}
		t.Status = statusCompleted
		if _, err := s.api.Tasks.Update(listID, t.Id, t).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("failed to update task: %w", err)
		}
		s.log.Info("task completed", zap.String("title", title))
		return fmt.Sprintf("タスク『%s』を完了にしました。", title), nil
	}

	return fmt.Sprintf("指定されたタスク『%s』は見つかりませんでした。", title), nil
}

// Delete removes the first task with an exactly matching title, completed
// ones included.
func (s *Service) Delete(ctx context.Context, title string) (string, error) {
	listID, err := s.resolveTasklist(ctx)
	if err != nil {
		return "", err
	}

	items, err := s.listAll(ctx, true, false)
	if err != nil {
		return "", err
	}

	for _, t := range items {
		if strings.TrimSpace(t.Title) != title {
			continue
		}
		if err := s.api.Tasks.Delete(listID, t.Id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("failed to delete task: %w", err)
		}
		s.log.Info("task deleted", zap.String("title", title))
		return fmt.Sprintf("タスク『%s』を削除しました。", title), nil
	}

	return fmt.Sprintf("指定されたタスク『%s』は見つかりませんでした。", title), nil
}

func (s *Service) listAll(ctx context.Context, showCompleted, showHidden bool) ([]*tasks.Task, error) {
	listID, err := s.resolveTasklist(ctx)
	if err != nil {
		return nil, err
	}

	call := s.api.Tasks.List(listID).ShowCompleted(showCompleted)
	if showHidden {
		call = call.ShowHidden(true)
	}
	list, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return list.Items, nil
}

// openTaskBullets keeps needsAction tasks with a title and a believable due
// date. Entries with pre-2015 due dates are leftovers the official UI also
// hides.
func openTaskBullets(items []*tasks.Task) string {
	var b strings.Builder
	for _, t := range items {
		title := strings.TrimSpace(t.Title)
		if title == "" || t.Status != "needsAction" {
			continue
		}
		if t.Due != "" && isZombieDue(t.Due) {
			continue
		}
		fmt.Fprintf(&b, "・%s\n", title)
	}
	return b.String()
}

func completedTaskBullets(items []*tasks.Task) string {
	var b strings.Builder
	for _, t := range items {
		title := strings.TrimSpace(t.Title)
		if title == "" || t.Status != statusCompleted {
			continue
		}
		fmt.Fprintf(&b, "・%s\n", title)
	}
	return b.String()
}

func dueTaskBullets(items []*tasks.Task) string {
	var b strings.Builder
	for _, t := range items {
		title := strings.TrimSpace(t.Title)
		if t.Due == "" || t.Status == statusCompleted {
			continue
		}
		fmt.Fprintf(&b, "・%s：期限 %s\n", title, timeutil.DueDate(t.Due))
	}
	return b.String()
}

func isZombieDue(due string) bool {
	if len(due) < 10 {
		return false
	}
	d, err := time.Parse("2006-01-02", due[:10])
	if err != nil {
		return false
	}
	return d.Year() < 2015
}
