package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

const dateLayout = "2006-01-02"

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// timeQuery acepta RFC3339 o YYYY-MM-DD. Con endOfDay, una fecha sin hora cubre el día completo.
func timeQuery(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.Invalid("%s debe ser RFC3339 o YYYY-MM-DD", key)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// dateRange lee from/to de la query.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = timeQuery(c, "from", false); err != nil {
		return nil, nil, err
	}
	if to, err = timeQuery(c, "to", true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
