package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/NotDonCitron/LarsHoliday/internal/alerts"
	"github.com/NotDonCitron/LarsHoliday/internal/deal"
	"github.com/NotDonCitron/LarsHoliday/internal/store"
)

var validate = validator.New()

// SearchDefaults fill in query parameters the caller omitted.
type SearchDefaults struct {
	GroupSize int
	Pets      int
	BudgetMin float64
	BudgetMax float64
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *deal.Service, st *store.MemoryStore, tracker *alerts.Tracker, defaults SearchDefaults) {
	v1 := app.Group("/api/v1")

	v1.Get("/search", func(c *fiber.Ctx) error {
		var req searchQuery
		if err := req.bind(c, defaults); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Search(c.Context(), req.toParams())
		if err != nil {
			if errors.Is(err, deal.ErrInvalidDateRange) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "search failed")
		}

		return c.JSON(result)
	})

	v1.Get("/runs/latest", func(c *fiber.Ctx) error {
		run, err := st.LatestRun()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no search runs yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load runs")
		}
		return c.JSON(run)
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"favorites": st.Favorites()})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var d deal.RankedDeal
		if err := c.BodyParser(&d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid deal payload")
		}
		if d.Name == "" || d.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "deal name and location are required")
		}

		if err := st.AddFavorite(d); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fiber.NewError(fiber.StatusConflict, "deal is already a favorite")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save favorite")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": d.PropertyID()})
	})

	v1.Delete("/favorites", func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id query parameter is required")
		}

		if err := st.RemoveFavorite(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "favorite not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove favorite")
		}

		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/alerts", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tracked": tracker.Tracked()})
	})

	v1.Get("/alerts/history", func(c *fiber.Ctx) error {
		id := c.Query("propertyId")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "propertyId query parameter is required")
		}

		history := tracker.History(id)
		if len(history) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no price history for property")
		}

		return c.JSON(fiber.Map{
			"propertyId": id,
			"prices":     history,
		})
	})
}

// searchQuery holds the query parameters for the search endpoint.
type searchQuery struct {
	Cities    []string  `validate:"required,min=1,dive,required"`
	CheckIn   time.Time `validate:"required"`
	CheckOut  time.Time `validate:"required,gtfield=CheckIn"`
	Adults    int       `validate:"gte=1"`
	Pets      int       `validate:"gte=0"`
	BudgetMin float64   `validate:"gte=0"`
	BudgetMax float64   `validate:"gtefield=BudgetMin"`
}

func (q *searchQuery) bind(c *fiber.Ctx, defaults SearchDefaults) error {
	cities := c.Query("cities")
	if cities == "" {
		return errors.New("cities query parameter is required")
	}
	for _, city := range strings.Split(cities, ",") {
		if trimmed := strings.TrimSpace(city); trimmed != "" {
			q.Cities = append(q.Cities, trimmed)
		}
	}

	checkin, err := parseDate(c.Query("checkin"))
	if err != nil {
		return errors.New("checkin must be a valid YYYY-MM-DD date")
	}
	checkout, err := parseDate(c.Query("checkout"))
	if err != nil {
		return errors.New("checkout must be a valid YYYY-MM-DD date")
	}
	q.CheckIn = checkin
	q.CheckOut = checkout

	q.Adults = c.QueryInt("adults", defaults.GroupSize)
	q.Pets = c.QueryInt("pets", defaults.Pets)
	q.BudgetMin = c.QueryFloat("budgetMin", defaults.BudgetMin)
	q.BudgetMax = c.QueryFloat("budgetMax", defaults.BudgetMax)

	return nil
}

func (q *searchQuery) toParams() deal.SearchParams {
	return deal.SearchParams{
		Cities:    q.Cities,
		CheckIn:   q.CheckIn,
		CheckOut:  q.CheckOut,
		GroupSize: q.Adults,
		Pets:      q.Pets,
		BudgetMin: q.BudgetMin,
		BudgetMax: q.BudgetMax,
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	return time.Parse("2006-01-02", s)
}
