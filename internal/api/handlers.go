package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/model"
)

type nameRequest struct {
	Name string `json:"name"`
}

type namesRequest struct {
	Names []string `json:"names"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type stopRequest struct {
	EndTime *time.Time `json:"end_time"`
	Note    string     `json:"note"`
}

type timerResponse struct {
	Timer   *model.ActiveTimer `json:"timer"`
	Stopped *model.Entry       `json:"stopped,omitempty"`
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Daybook API"})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	status := s.svc.Check(c.UserContext())
	code := fiber.StatusOK
	if !status.Healthy {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	var in model.EntryInput
	if err := c.BodyParser(&in); err != nil {
		return badPayload(err)
	}
	entry, err := s.svc.CreateEntry(c.UserContext(), in)
	if err != nil {
		return err
	}
	s.metrics.RecordEntrySaved()
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (s *Server) handleGetDay(c *fiber.Ctx) error {
	day, err := s.svc.GetDay(c.UserContext(), c.Params("date"))
	if err != nil {
		return err
	}
	return c.JSON(day)
}

func (s *Server) handleGetWeek(c *fiber.Ctx) error {
	week, err := s.svc.GetWeek(c.UserContext(), c.Params("start_date"))
	if err != nil {
		return err
	}
	return c.JSON(week)
}

func (s *Server) handleUpdateEntry(c *fiber.Ctx) error {
	var in model.EntryInput
	if err := c.BodyParser(&in); err != nil {
		return badPayload(err)
	}
	entry, err := s.svc.UpdateEntry(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	s.metrics.RecordEntrySaved()
	return c.JSON(entry)
}

func (s *Server) handleDeleteEntry(c *fiber.Ctx) error {
	if err := s.svc.DeleteEntry(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Timer entry deleted"})
}

func (s *Server) handleTimerStatus(c *fiber.Ctx) error {
	status, err := s.svc.Timer(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(status)
}

func (s *Server) handleStartTimer(c *fiber.Ctx) error {
	var in model.EntryInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badPayload(err)
		}
	}
	timer, stopped, err := s.svc.StartTimer(c.UserContext(), in)
	if err != nil {
		return err
	}
	if stopped != nil {
		s.metrics.RecordEntrySaved()
	}
	return c.Status(fiber.StatusCreated).JSON(timerResponse{Timer: timer, Stopped: stopped})
}

func (s *Server) handleStopTimer(c *fiber.Ctx) error {
	var req stopRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badPayload(err)
		}
	}
	var end time.Time
	if req.EndTime != nil {
		end = *req.EndTime
	}
	entry, err := s.svc.StopTimer(c.UserContext(), end, req.Note)
	if err != nil {
		return err
	}
	s.metrics.RecordEntrySaved()
	return c.JSON(entry)
}

func (s *Server) handleCancelTimer(c *fiber.Ctx) error {
	timer, err := s.svc.CancelTimer(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(timerResponse{Timer: timer})
}

func (s *Server) handleWeekStats(c *fiber.Ctx) error {
	stats, err := s.svc.GetWeekStats(c.UserContext(), c.Params("start_date"))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (s *Server) handleRangeStats(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		return errors.NewUserError("from and to are required", "Pass ?from=YYYY-MM-DD&to=YYYY-MM-DD")
	}
	stats, err := s.svc.GetRangeStats(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (s *Server) handleListLabels(kind model.LabelKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := s.svc.ListLabels(c.UserContext(), kind)
		if err != nil {
			return err
		}
		return c.JSON(names)
	}
}

func (s *Server) handleAddLabel(kind model.LabelKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req nameRequest
		if err := c.BodyParser(&req); err != nil {
			return badPayload(err)
		}
		names, err := s.svc.AddLabel(c.UserContext(), kind, req.Name)
		if err != nil {
			return err
		}
		return c.JSON(names)
	}
}

func (s *Server) handleSyncLabels(kind model.LabelKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req namesRequest
		if err := c.BodyParser(&req); err != nil {
			return badPayload(err)
		}
		names, err := s.svc.SyncLabels(c.UserContext(), kind, req.Names)
		if err != nil {
			return err
		}
		return c.JSON(names)
	}
}

func (s *Server) handleGetColors(c *fiber.Ctx) error {
	colors, err := s.svc.GetAllColors(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(colors)
}

func (s *Server) handleSetColor(kind model.LabelKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req colorRequest
		if err := c.BodyParser(&req); err != nil {
			return badPayload(err)
		}
		lc, err := s.svc.SetColor(c.UserContext(), kind, c.Params("name"), req.Color)
		if err != nil {
			return err
		}
		return c.JSON(lc)
	}
}

func (s *Server) handleReindex(c *fiber.Ctx) error {
	n, err := s.svc.Reindex(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"indexed": n})
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	return c.JSON(s.metrics.Snapshot())
}

func badPayload(err error) error {
	return &errors.UserError{
		Message:    "invalid payload",
		Suggestion: err.Error(),
	}
}
