package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/service"
)

const defaultSubtaskCount = 3

// Services is the set of use cases the default registry exposes.
type Services struct {
	Tasks    service.TaskService
	Events   service.EventService
	Goals    service.GoalService
	Planning service.PlanningService
	Priority service.PriorityService
	Memory   *Memory
	Location *time.Location
}

func (s Services) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// ok is the result of calls that have nothing else to report.
type ok struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

type countResult struct {
	Count int `json:"count"`
}

// NewDefaultRegistry registers every assistant function over svc.
func NewDefaultRegistry(svc Services) *Registry {
	r := NewRegistry()
	registerTaskFunctions(r, svc)
	registerEventFunctions(r, svc)
	registerGoalFunctions(r, svc)
	registerPlanningFunctions(r, svc)
	registerPriorityFunctions(r, svc)
	return r
}

func registerTaskFunctions(r *Registry, svc Services) {
	r.Register(Function{
		Name:        "add_task",
		Description: "create a task",
		Params:      map[string]string{"title": "string", "deadline": "ISO datetime?", "priority": "urgent|important|normal|low?", "estimated_minutes": "int?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Title            string  `json:"title"`
				Deadline         string  `json:"deadline"`
				Priority         string  `json:"priority"`
				EstimatedMinutes flexInt `json:"estimated_minutes"`
			}](raw)
			if err != nil {
				return nil, err
			}
			deadline, err := parseWhen(p.Deadline, svc.loc())
			if err != nil {
				return nil, err
			}
			req := contract.AddTaskRequest{Title: p.Title, Deadline: deadline}
			if p.Priority != "" {
				pr := domain.Priority(p.Priority)
				req.Priority = &pr
			}
			if p.EstimatedMinutes.Set {
				req.EstimatedMinutes = &p.EstimatedMinutes.Value
			}
			return svc.Tasks.Add(ctx, req)
		},
	})
	r.Register(Function{
		Name:        "update_task_status",
		Description: "set a task's status",
		Params:      map[string]string{"task_id": "string", "status": "pending|in_progress|done|blocked"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				TaskID string `json:"task_id"`
				Status string `json:"status"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("task_id", p.TaskID); err != nil {
				return nil, err
			}
			return svc.Tasks.UpdateStatus(ctx, p.TaskID, domain.TaskStatus(strings.ToLower(p.Status)))
		},
	})
	r.Register(Function{
		Name:        "update_task",
		Description: "change a task's title, deadline, priority or estimate",
		Params:      map[string]string{"task_id": "string", "title": "string?", "deadline": "ISO datetime?", "priority": "string?", "estimated_minutes": "int?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				TaskID           string  `json:"task_id"`
				Title            *string `json:"title"`
				Deadline         string  `json:"deadline"`
				Priority         string  `json:"priority"`
				EstimatedMinutes flexInt `json:"estimated_minutes"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("task_id", p.TaskID); err != nil {
				return nil, err
			}
			deadline, err := parseWhen(p.Deadline, svc.loc())
			if err != nil {
				return nil, err
			}
			req := contract.UpdateTaskRequest{TaskID: p.TaskID, Title: p.Title, Deadline: deadline}
			if p.Priority != "" {
				pr := domain.Priority(p.Priority)
				req.Priority = &pr
			}
			if p.EstimatedMinutes.Set {
				req.EstimatedMinutes = &p.EstimatedMinutes.Value
			}
			return svc.Tasks.Update(ctx, req)
		},
	})
	r.Register(Function{
		Name:        "delete_task",
		Description: "delete a task",
		Params:      map[string]string{"task_id": "string"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				TaskID string `json:"task_id"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("task_id", p.TaskID); err != nil {
				return nil, err
			}
			if err := svc.Tasks.Delete(ctx, p.TaskID); err != nil {
				return nil, err
			}
			return ok{OK: true, ID: p.TaskID}, nil
		},
	})
	r.Register(Function{
		Name:        "list_tasks",
		Description: "list tasks",
		Params:      map[string]string{"status": "open|done|all?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Status string `json:"status"`
			}](raw)
			if err != nil {
				return nil, err
			}
			switch strings.ToLower(p.Status) {
			case "", "open":
				return svc.Tasks.ListOpen(ctx)
			case "done":
				return svc.Tasks.ListDone(ctx)
			case "all":
				return svc.Tasks.List(ctx)
			default:
				return nil, fmt.Errorf("%w: unknown status filter %q", service.ErrValidation, p.Status)
			}
		},
	})
	r.Register(Function{
		Name:        "generate_subtasks",
		Description: "split a task into a parent and subtasks",
		Params:      map[string]string{"parent_title": "string", "count": "int?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				ParentTitle string  `json:"parent_title"`
				Count       flexInt `json:"count"`
			}](raw)
			if err != nil {
				return nil, err
			}
			return svc.Tasks.GenerateSubtasks(ctx, p.ParentTitle, p.Count.or(defaultSubtaskCount))
		},
	})
}

func registerEventFunctions(r *Registry, svc Services) {
	r.Register(Function{
		Name:        "schedule_event",
		Description: "schedule an event; reports conflicts unless force is true",
		Params:      map[string]string{"title": "string", "datetime_start": "ISO datetime", "datetime_end": "ISO datetime", "force": "bool?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[contract.ScheduleEventRequest](raw)
			if err != nil {
				return nil, err
			}
			return svc.Events.Schedule(ctx, req)
		},
	})
	r.Register(Function{
		Name:        "schedule_recurring_event",
		Description: "schedule a weekly event (day_of_week 0=Sunday)",
		Params:      map[string]string{"day_of_week": "int 0-6", "start_time_hhmm": "HH:MM", "end_time_hhmm": "HH:MM", "weeks": "int?", "title": "string?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				DayOfWeek flexInt `json:"day_of_week"`
				Start     string  `json:"start_time_hhmm"`
				End       string  `json:"end_time_hhmm"`
				Weeks     flexInt `json:"weeks"`
				Title     string  `json:"title"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if !p.DayOfWeek.Set {
				return nil, fmt.Errorf("%w: day_of_week is required", service.ErrValidation)
			}
			req := contract.NewRecurringEventRequest(p.DayOfWeek.Value, p.Start, p.End)
			req.Weeks = p.Weeks.or(req.Weeks)
			if p.Title != "" {
				req.Title = p.Title
			}
			return svc.Events.ScheduleRecurring(ctx, req)
		},
	})
	r.Register(Function{
		Name:        "shift_next_event",
		Description: "move the next upcoming event by minutes (negative moves earlier)",
		Params:      map[string]string{"minutes": "int"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Minutes flexInt `json:"minutes"`
			}](raw)
			if err != nil {
				return nil, err
			}
			return svc.Events.ShiftNext(ctx, p.Minutes.Value)
		},
	})
	r.Register(Function{
		Name:        "list_events",
		Description: "list events, optionally for one date",
		Params:      map[string]string{"date": "YYYY-MM-DD?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Date string `json:"date"`
			}](raw)
			if err != nil {
				return nil, err
			}
			day, err := parseWhen(p.Date, svc.loc())
			if err != nil {
				return nil, err
			}
			if day == nil {
				return svc.Events.List(ctx)
			}
			return svc.Events.ListForDay(ctx, *day)
		},
	})
	r.Register(Function{
		Name:        "update_event",
		Description: "change an event's title or times",
		Params:      map[string]string{"event_id": "string", "title": "string?", "start_time": "ISO datetime?", "end_time": "ISO datetime?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req, err := decode[contract.UpdateEventRequest](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("event_id", req.EventID); err != nil {
				return nil, err
			}
			return svc.Events.Update(ctx, req)
		},
	})
	r.Register(Function{
		Name:        "delete_event",
		Description: "delete an event",
		Params:      map[string]string{"event_id": "string"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				EventID string `json:"event_id"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("event_id", p.EventID); err != nil {
				return nil, err
			}
			if err := svc.Events.Delete(ctx, p.EventID); err != nil {
				return nil, err
			}
			return ok{OK: true, ID: p.EventID}, nil
		},
	})
}

func registerGoalFunctions(r *Registry, svc Services) {
	r.Register(Function{
		Name:        "list_goals",
		Description: "list goals",
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.Goals.List(ctx)
		},
	})
	r.Register(Function{
		Name:        "add_goal",
		Description: "create a goal",
		Params:      map[string]string{"title": "string", "target_date": "YYYY-MM-DD?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Title      string `json:"title"`
				TargetDate string `json:"target_date"`
			}](raw)
			if err != nil {
				return nil, err
			}
			target, err := parseWhen(p.TargetDate, svc.loc())
			if err != nil {
				return nil, err
			}
			return svc.Goals.Add(ctx, contract.AddGoalRequest{Title: p.Title, TargetDate: target})
		},
	})
	r.Register(Function{
		Name:        "update_goal_progress",
		Description: "set a goal's progress in percent",
		Params:      map[string]string{"goal_id": "string", "progress": "number 0-100"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				GoalID   string    `json:"goal_id"`
				Progress flexFloat `json:"progress"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("goal_id", p.GoalID); err != nil {
				return nil, err
			}
			if !p.Progress.Set {
				return nil, fmt.Errorf("%w: progress is required", service.ErrValidation)
			}
			return svc.Goals.UpdateProgress(ctx, p.GoalID, p.Progress.Value)
		},
	})
	r.Register(Function{
		Name:        "update_goal",
		Description: "change a goal's title or target date",
		Params:      map[string]string{"goal_id": "string", "title": "string?", "target_date": "YYYY-MM-DD?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				GoalID     string  `json:"goal_id"`
				Title      *string `json:"title"`
				TargetDate string  `json:"target_date"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("goal_id", p.GoalID); err != nil {
				return nil, err
			}
			target, err := parseWhen(p.TargetDate, svc.loc())
			if err != nil {
				return nil, err
			}
			return svc.Goals.Update(ctx, contract.UpdateGoalRequest{GoalID: p.GoalID, Title: p.Title, TargetDate: target})
		},
	})
	r.Register(Function{
		Name:        "delete_goal",
		Description: "delete a goal",
		Params:      map[string]string{"goal_id": "string"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				GoalID string `json:"goal_id"`
			}](raw)
			if err != nil {
				return nil, err
			}
			if err := requireID("goal_id", p.GoalID); err != nil {
				return nil, err
			}
			if err := svc.Goals.Delete(ctx, p.GoalID); err != nil {
				return nil, err
			}
			return ok{OK: true, ID: p.GoalID}, nil
		},
	})
}

func registerPlanningFunctions(r *Registry, svc Services) {
	dated := func(raw json.RawMessage) (time.Time, error) {
		p, err := decode[struct {
			Date string `json:"date"`
		}](raw)
		if err != nil {
			return time.Time{}, err
		}
		day, err := parseWhen(p.Date, svc.loc())
		if err != nil || day == nil {
			return time.Time{}, err
		}
		return *day, nil
	}
	r.Register(Function{
		Name:        "generate_daily_summary",
		Description: "plan a day: free slots, task placement, reschedule hints",
		Params:      map[string]string{"date": "YYYY-MM-DD?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			day, err := dated(raw)
			if err != nil {
				return nil, err
			}
			return svc.Planning.GenerateDailySummary(ctx, day)
		},
	})
	r.Register(Function{
		Name:        "evaluate_day",
		Description: "score how much of the day's work is done",
		Params:      map[string]string{"date": "YYYY-MM-DD?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			day, err := dated(raw)
			if err != nil {
				return nil, err
			}
			return svc.Planning.EvaluateDay(ctx, day)
		},
	})
	r.Register(Function{
		Name:        "trend_overview",
		Description: "completion trend over recent evaluations",
		Params:      map[string]string{"days": "int?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Days flexInt `json:"days"`
			}](raw)
			if err != nil {
				return nil, err
			}
			return svc.Planning.Trend(ctx, p.Days.Value)
		},
	})
	r.Register(Function{
		Name:        "memory_summary",
		Description: "summarize recent assistant activity",
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			if svc.Memory == nil {
				return nil, ErrNoMemory
			}
			return svc.Memory.Summarize(ctx)
		},
	})
}

func registerPriorityFunctions(r *Registry, svc Services) {
	r.Register(Function{
		Name:        "prioritize_tasks",
		Description: "rank all tasks by priority score",
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.Priority.Prioritize(ctx)
		},
	})
	r.Register(Function{
		Name:        "suggest_next_task",
		Description: "pick the single best open task to work on now",
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.Priority.SuggestNext(ctx)
		},
	})
	r.Register(Function{
		Name:        "focus_today",
		Description: "top three open tasks for today",
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			res, err := svc.Priority.FocusToday(ctx)
			if err != nil {
				return nil, err
			}
			if svc.Memory != nil {
				svc.Memory.Note(ctx, domain.RoleSystem, "focus_today computed", nil, countResult{Count: res.Count})
			}
			return res, nil
		},
	})
	r.Register(Function{
		Name:        "auto_schedule_top_tasks",
		Description: "book one-hour focus blocks for the top tasks this afternoon",
		Params:      map[string]string{"count": "int?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Count flexInt `json:"count"`
			}](raw)
			if err != nil {
				return nil, err
			}
			return svc.Priority.AutoSchedule(ctx, p.Count.Value)
		},
	})
	r.Register(Function{
		Name:        "detect_stagnant_tasks",
		Description: "find unfinished tasks older than hours",
		Params:      map[string]string{"hours": "int?"},
		Handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			p, err := decode[struct {
				Hours flexInt `json:"hours"`
			}](raw)
			if err != nil {
				return nil, err
			}
			res, err := svc.Priority.Stagnant(ctx, p.Hours.Value)
			if err != nil {
				return nil, err
			}
			if svc.Memory != nil {
				svc.Memory.Note(ctx, domain.RoleSystem, "stagnant_scan", nil, countResult{Count: res.Count})
			}
			return res, nil
		},
	})
	r.Register(Function{
		Name:        "progress_overview",
		Description: "overall task completion ratio",
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return svc.Priority.Progress(ctx)
		},
	})
}
