package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
)

type NotificationFilter string

const (
	NotifyAll   NotificationFilter = "all"
	NotifyTasks NotificationFilter = "tasks"
	NotifyLeads NotificationFilter = "leads"
)

const (
	// Stages with an id up to this value count as the early funnel.
	EarlyStageMaxID   int64 = 3
	StaleLeadLimit          = 10
	InactiveAfterDays       = 3
)

func ParseNotificationFilter(s string) (NotificationFilter, error) {
	switch f := NotificationFilter(s); f {
	case "":
		return NotifyAll, nil
	case NotifyAll, NotifyTasks, NotifyLeads:
		return f, nil
	}
	return "", NewDomainError(CodeValidation, "type must be one of all, tasks, leads")
}

func (f NotificationFilter) tasks() bool { return f == NotifyAll || f == NotifyTasks }
func (f NotificationFilter) leads() bool { return f == NotifyAll || f == NotifyLeads }

type NotificationService struct {
	Source entity.NotificationSourceInterface
	Now    func() time.Time
}

func NewNotificationService(source entity.NotificationSourceInterface) *NotificationService {
	return &NotificationService{Source: source, Now: time.Now}
}

// Feed recomputes the notification list from the current store state.
func (s *NotificationService) Feed(ctx context.Context, filter NotificationFilter) (*NotificationFeed, error) {
	now := s.Now()

	var tasks []entity.DueTask
	if filter.tasks() {
		var err error
		tasks, err = s.Source.DueTasks(ctx, civilDate(now).AddDate(0, 0, 1))
		if err != nil {
			return nil, dbError("failed to load due tasks", err)
		}
	}

	var leads []entity.LeadActivity
	if filter.leads() {
		var err error
		leads, err = s.Source.StaleLeadCandidates(ctx, EarlyStageMaxID, StaleLeadLimit)
		if err != nil {
			return nil, dbError("failed to load lead activity", err)
		}
	}

	items := BuildNotifications(now, tasks, leads)

	unread := 0
	for _, n := range items {
		if n.Urgency.Unread() {
			unread++
		}
	}

	return &NotificationFeed{
		Notifications: items,
		Total:         len(items),
		Unread:        unread,
	}, nil
}

// BuildNotifications classifies both signal streams at now and returns them ranked:
// urgency tier first, then due date ascending with undated entries last.
func BuildNotifications(now time.Time, tasks []entity.DueTask, leads []entity.LeadActivity) []entity.Notification {
	items := make([]entity.Notification, 0, len(tasks)+len(leads))
	items = append(items, TaskNotifications(now, tasks)...)
	items = append(items, LeadNotifications(now, leads)...)

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Urgency.Rank() != b.Urgency.Rank() {
			return a.Urgency.Rank() < b.Urgency.Rank()
		}
		switch {
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		}
		return a.DueDate.Before(*b.DueDate)
	})

	return items
}

func TaskNotifications(now time.Time, tasks []entity.DueTask) []entity.Notification {
	today := civilDate(now)
	tomorrow := today.AddDate(0, 0, 1)

	var out []entity.Notification
	for _, t := range tasks {
		if t.Completed {
			continue
		}

		due := civilDate(t.DueDate.In(now.Location()))
		var urgency entity.Urgency
		var text string
		switch {
		case due.Equal(today):
			urgency = entity.UrgencyUrgent
			text = fmt.Sprintf("Task due today: %s", t.Title)
		case due.Before(today):
			urgency = entity.UrgencyOverdue
			text = fmt.Sprintf("Overdue by %d day(s): %s", daysBetween(due, today), t.Title)
		case due.Equal(tomorrow):
			urgency = entity.UrgencyNormal
			text = fmt.Sprintf("Task due tomorrow: %s", t.Title)
		default:
			continue
		}

		dueDate := t.DueDate
		out = append(out, entity.Notification{
			ID:        fmt.Sprintf("task_%d", t.ID),
			Type:      entity.NotificationTypeTask,
			Urgency:   urgency,
			Title:     text,
			Message:   text,
			LeadID:    t.LeadID,
			LeadName:  t.LeadName,
			Priority:  t.Priority,
			DueDate:   &dueDate,
			CreatedAt: now,
		})
	}
	return out
}

func LeadNotifications(now time.Time, leads []entity.LeadActivity) []entity.Notification {
	var out []entity.Notification
	for _, l := range leads {
		if l.Priority != entity.PriorityHigh || l.StageID == nil || *l.StageID > EarlyStageMaxID {
			continue
		}

		base := entity.Notification{
			Type:      entity.NotificationTypeLead,
			LeadID:    l.ID,
			LeadName:  l.Name,
			Priority:  l.Priority,
			CreatedAt: now,
		}

		age := wholeDays(now.Sub(l.CreatedAt))
		switch {
		case l.CallsCount == 0 && age > 0:
			base.ID = fmt.Sprintf("lead_%d_no_calls", l.ID)
			base.Urgency = entity.UrgencyUrgent
			base.Title = fmt.Sprintf("No calls yet: %s", l.Name)
			base.Message = fmt.Sprintf("High-priority lead without calls for %d day(s)", age)
			out = append(out, base)
		case l.LastCallAt != nil:
			since := wholeDays(now.Sub(*l.LastCallAt))
			if since <= InactiveAfterDays {
				continue
			}
			base.ID = fmt.Sprintf("lead_%d_inactive", l.ID)
			base.Urgency = entity.UrgencyNormal
			base.Title = fmt.Sprintf("No recent contact: %s", l.Name)
			base.Message = fmt.Sprintf("Last call was %d day(s) ago", since)
			out = append(out, base)
		}
	}
	return out
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// wholeDays floors d to days; negative durations count as zero.
func wholeDays(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
