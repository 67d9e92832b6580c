package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/uvify/uv-monitor/internal/source"
	"github.com/uvify/uv-monitor/internal/uv"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. service serves
// the reading views; backend handles the proxied auth, profile, and
// suggestion calls.
func RegisterRoutes(app *fiber.App, service *uv.Service, backend *source.Client, pageSize int) {
	v1 := app.Group("/api/v1")

	v1.Get("/uv/latest", func(c *fiber.Ctx) error {
		lastUpdate, _ := service.LastUpdate()

		reading, ok := service.Latest()
		if !ok {
			return c.JSON(fiber.Map{
				"reading":     nil,
				"level":       nil,
				"isConnected": service.IsConnected(),
				"lastUpdate":  lastUpdate,
			})
		}

		return c.JSON(fiber.Map{
			"reading":     reading,
			"level":       uv.ClassifyInstant(float64(reading.UVI)),
			"isConnected": service.IsConnected(),
			"lastUpdate":  lastUpdate,
		})
	})

	v1.Get("/uv/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings := service.Filter(uv.Period(req.Window), req.Date)
		page := uv.Paginate(readings, req.Page, pageSize)

		return c.JSON(fiber.Map{
			"window":     req.Window,
			"date":       req.Date,
			"page":       page.Page,
			"pageSize":   page.PageSize,
			"totalPages": page.TotalPages,
			"totalItems": page.TotalItems,
			"readings":   page.Readings,
		})
	})

	v1.Get("/uv/stats", func(c *fiber.Ctx) error {
		return c.JSON(service.Stats())
	})

	v1.Get("/uv/accumulation", func(c *fiber.Ctx) error {
		return c.JSON(service.Accumulation())
	})

	v1.Get("/uv/levels", func(c *fiber.Ctx) error {
		return c.JSON(uv.AllLevels())
	})

	v1.Get("/uv/suggestion", func(c *fiber.Ctx) error {
		text, err := service.Suggestion(c.Context())
		if err != nil {
			if errors.Is(err, source.ErrMalformedPayload) {
				return fiber.NewError(fiber.StatusBadGateway, "suggestion service returned an unusable response")
			}
			return fiber.NewError(fiber.StatusBadGateway, "suggestion service unavailable")
		}
		return c.JSON(fiber.Map{"suggestion": text})
	})

	v1.Post("/auth/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := backend.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "auth service unavailable")
		}
		return c.JSON(result)
	})

	v1.Post("/auth/signup", func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := backend.Signup(c.Context(), req.FirstName, req.LastName, req.Email, req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "auth service unavailable")
		}
		return c.JSON(result)
	})

	v1.Get("/profile/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user id is required")
		}

		result, err := backend.Profile(c.Context(), id)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "profile service unavailable")
		}
		return c.JSON(result)
	})
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Window string `validate:"required,oneof=today yesterday lastWeek lastMonth custom"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
	Page   int
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Window = c.Query("window", string(uv.PeriodToday))
	h.Date = c.Query("date")

	if uv.Period(h.Window) == uv.PeriodCustom && h.Date == "" {
		return errors.New("date query parameter is required for the custom window")
	}

	pageStr := c.Query("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return errors.New("page must be an integer")
	}
	h.Page = page
	return nil
}

// loginRequest is the proxied login body.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// signupRequest is the proxied signup body.
type signupRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}
