package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/upstream"
)

// failUpstream reports an upstream failure as 502 with the message the
// university sent, or the generic one.
func failUpstream(c *gin.Context, err error) {
	_ = c.Error(err)

	code := response.ErrUpstream
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message == upstream.MsgBadResponse {
		code = response.ErrBadResponse
	}
	if errors.Is(err, upstream.ErrNotFound) {
		response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, upstream.Message(err))
		return
	}
	response.FailWithMessage(c, http.StatusBadGateway, code, upstream.Message(err))
}
