package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

const (
	dateLayout         = "2006-01-02"
	defaultMemoryLimit = 50
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serverTime(w http.ResponseWriter, _ *http.Request) {
	now := s.Now().In(s.Location)
	writeJSON(w, http.StatusOK, map[string]string{
		"now":      now.Format(time.RFC3339),
		"timezone": s.Location.String(),
	})
}

// queryDate parses ?date=YYYY-MM-DD in the server location. Absent means
// the zero time, which the services read as today.
func (s *Server) queryDate(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, s.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", errBadRequest)
	}
	return t, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	return n, nil
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []*domain.Task
		err   error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "", "all":
		tasks, err = s.Tasks.List(r.Context())
	case "open":
		tasks, err = s.Tasks.ListOpen(r.Context())
	case "done":
		tasks, err = s.Tasks.ListDone(r.Context())
	default:
		err = fmt.Errorf("%w: unknown status filter %q", errBadRequest, status)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req contract.AddTaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	task, err := s.Tasks.Add(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type updateTaskBody struct {
	contract.UpdateTaskRequest
	Status *domain.TaskStatus `json:"status,omitempty"`
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var body updateTaskBody
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	body.TaskID = r.PathValue("id")

	var (
		task *domain.Task
		err  error
	)
	req := body.UpdateTaskRequest
	fields := req.Title != nil || req.Deadline != nil || req.Priority != nil || req.EstimatedMinutes != nil || req.AIExplanation != nil
	// A body with neither fields nor status goes to Update, which rejects it.
	if fields || body.Status == nil {
		if task, err = s.Tasks.Update(r.Context(), req); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if body.Status != nil {
		if task, err = s.Tasks.UpdateStatus(r.Context(), body.TaskID, *body.Status); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.Tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	day, err := s.queryDate(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var events []*domain.Event
	if day.IsZero() {
		events, err = s.Events.List(r.Context())
	} else {
		events, err = s.Events.ListForDay(r.Context(), day)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// createEvent answers 409 with the conflict report when the event
// overlaps and force is not set.
func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req contract.ScheduleEventRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.Events.Schedule(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.Conflict {
		writeJSON(w, http.StatusConflict, res.ConflictResult)
		return
	}
	writeJSON(w, http.StatusCreated, res.Event)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateEventRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.EventID = r.PathValue("id")
	ev, err := s.Events.Update(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.Events.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.Goals.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var req contract.AddGoalRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	goal, err := s.Goals.Add(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

type updateGoalBody struct {
	contract.UpdateGoalRequest
	Progress *float64 `json:"progress,omitempty"`
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	var body updateGoalBody
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	body.GoalID = r.PathValue("id")

	var (
		goal *domain.Goal
		err  error
	)
	if body.Title != nil || body.TargetDate != nil || body.Progress == nil {
		if goal, err = s.Goals.Update(r.Context(), body.UpdateGoalRequest); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if body.Progress != nil {
		if goal, err = s.Goals.UpdateProgress(r.Context(), body.GoalID, *body.Progress); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.Goals.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	day, err := s.queryDate(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	summary, err := s.Planning.GenerateDailySummary(r.Context(), day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	day, err := s.queryDate(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	eval, err := s.Planning.EvaluateDay(r.Context(), day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func (s *Server) trend(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	overview, err := s.Planning.Trend(r.Context(), days)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) prioritize(w http.ResponseWriter, r *http.Request) {
	scored, err := s.Priority.Prioritize(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scored)
}

func (s *Server) focus(w http.ResponseWriter, r *http.Request) {
	res, err := s.Priority.FocusToday(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) callFunction(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: reading body: %v", errBadRequest, err))
		return
	}
	if len(raw) > 0 && !json.Valid(raw) {
		s.fail(w, r, fmt.Errorf("%w: invalid json", errBadRequest))
		return
	}
	out, err := s.Assistant.Registry().Call(r.Context(), r.PathValue("name"), raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.Assistant.Chat(r.Context(), body.Message)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) reflect(w http.ResponseWriter, r *http.Request) {
	refl, err := s.Assistant.Reflect(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refl)
}

func (s *Server) agentState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Assistant.State().Snapshot())
}

func (s *Server) agentMemory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	entries, err := s.Assistant.Memory().Recent(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
