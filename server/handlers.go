package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/poiesic/conceptmap/core"
)

// handleGraph serves the root view, or the concept drilldown when an id
// query parameter is present.
func (s *Server) handleGraph(c echo.Context) error {
	raw := c.QueryParam("id")
	if raw == "" {
		graph, err := s.service.RootGraph(c.Request().Context())
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, graph)
	}

	id, err := parseID(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	graph, err := s.service.ConceptGraph(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, graph)
}

// handleExpand serves the blog post expansion view.
func (s *Server) handleExpand(c echo.Context) error {
	raw := c.QueryParam("id")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "id is required"})
	}

	id, err := parseID(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid id"})
	}

	graph, err := s.service.BlogExpansion(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, graph)
}

// handleSearch serves semantic search over blog posts.
func (s *Server) handleSearch(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "q is required"})
	}

	resp, err := s.service.Search(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) fail(c echo.Context, err error) error {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Path(), "err", err)
	}
	return c.JSON(status, errorBody{Error: message})
}

func parseID(raw string) (core.ID, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return core.ID(id), nil
}
