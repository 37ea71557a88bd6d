package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StreamEvents handles GET /api/v1/events. It streams refresh events as
// server-sent events until the client disconnects. Clients re-query the
// API when an event arrives; the stream itself never carries state.
func (s *Server) StreamEvents(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return respondError(c, err)
	}

	subscription, err := s.subscriber.Subscribe(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	defer subscription.Close()

	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case event, ok := <-subscription.Events():
			if !ok {
				return nil
			}

			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(response, "data: %s\n\n", payload); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}
