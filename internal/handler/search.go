package handler

import (
	"net/http"
	"strings"

	"greenroots/internal/apierror"
	"greenroots/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct{ svc service.SearchService }

func NewSearchHandler(svc service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Query parameter q is required"))
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), term)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
