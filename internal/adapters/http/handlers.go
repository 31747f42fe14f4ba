package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouteHandler returns the route line as a GeoJSON Feature.
func RouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := deps.Routes.Route(c.UserContext())
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("encode route failed", "error", err)
			return errInternal(c, err.Error())
		}

		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(data)
	}
}

// RouteSummaryHandler returns point count, length and bounds of the route.
func RouteSummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Routes.Summary(c.UserContext()))
	}
}

// MarkersHandler returns the start, end and current location markers.
// ?color= filters by marker color.
func MarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		markers := deps.Routes.Markers(c.UserContext())

		color := c.Query("color")
		if color == "" {
			return c.JSON(markers)
		}

		filtered := markers[:0]
		for _, m := range markers {
			if string(m.Color) == color {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) == 0 {
			return errBadRequest(c, "color must be one of green, red, blue")
		}
		return c.JSON(filtered)
	}
}

// ViewHandler returns the initial map options. The access token is not included.
func ViewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Routes.InitialView(c.UserContext()))
	}
}
