package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to the route service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lng": &graphql.Field{Type: graphql.Float},
			"lat": &graphql.Field{Type: graphql.Float},
		},
	})

	lineStringType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LineString",
		Fields: graphql.Fields{
			"type":        &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: graphql.NewList(graphql.NewList(graphql.Float))},
		},
	})

	markerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Marker",
		Fields: graphql.Fields{
			"position":   &graphql.Field{Type: geoPointType},
			"color":      &graphql.Field{Type: graphql.String},
			"popup_text": &graphql.Field{Type: graphql.String},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bounds",
		Fields: graphql.Fields{
			"min_lat": &graphql.Field{Type: graphql.Float},
			"min_lng": &graphql.Field{Type: graphql.Float},
			"max_lat": &graphql.Field{Type: graphql.Float},
			"max_lng": &graphql.Field{Type: graphql.Float},
		},
	})

	summaryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RouteSummary",
		Fields: graphql.Fields{
			"points":          &graphql.Field{Type: graphql.Int},
			"distance_meters": &graphql.Field{Type: graphql.Float},
			"bounds":          &graphql.Field{Type: boundsType},
		},
	})

	viewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MapView",
		Fields: graphql.Fields{
			"container": &graphql.Field{Type: graphql.String},
			"style":     &graphql.Field{Type: graphql.String},
			"center":    &graphql.Field{Type: geoPointType},
			"zoom":      &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"route": &graphql.Field{
				Type:        lineStringType,
				Description: "Route line from start through current to end location",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					coords := deps.Routes.Geometry(p.Context).Coordinates()
					out := make([][]float64, 0, len(coords))
					for _, c := range coords {
						out = append(out, []float64{c[0], c[1]})
					}
					return map[string]interface{}{
						"type":        "LineString",
						"coordinates": out,
					}, nil
				},
			},
			"routeSummary": &graphql.Field{
				Type:        summaryType,
				Description: "Point count, length and bounds of the route",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s := deps.Routes.Summary(p.Context)
					return map[string]interface{}{
						"points":          s.Points,
						"distance_meters": s.DistanceMeters,
						"bounds": map[string]interface{}{
							"min_lat": s.Bounds.MinLat,
							"min_lng": s.Bounds.MinLng,
							"max_lat": s.Bounds.MaxLat,
							"max_lng": s.Bounds.MaxLng,
						},
					}, nil
				},
			},
			"markers": &graphql.Field{
				Type:        graphql.NewList(markerType),
				Description: "Start, end and current location markers",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var result []map[string]interface{}
					for _, m := range deps.Routes.Markers(p.Context) {
						result = append(result, map[string]interface{}{
							"position":   map[string]interface{}{"lng": m.Position.Lng, "lat": m.Position.Lat},
							"color":      string(m.Color),
							"popup_text": m.PopupText,
						})
					}
					return result, nil
				},
			},
			"initialView": &graphql.Field{
				Type:        viewType,
				Description: "Options the map is constructed with",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					v := deps.Routes.InitialView(p.Context)
					return map[string]interface{}{
						"container": v.Container,
						"style":     v.StyleURL,
						"center":    map[string]interface{}{"lng": v.Center.Lng, "lat": v.Center.Lat},
						"zoom":      v.Zoom,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
