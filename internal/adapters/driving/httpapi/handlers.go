package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

// ComposeBody is the request body of the compose route.
type ComposeBody struct {
	Template   string            `json:"template,omitempty"`
	Selections domain.Selections `json:"selections,omitempty"`
	Seed       *uint64           `json:"seed,omitempty"`
	Mode       domain.FillMode   `json:"mode,omitempty"`
	Strict     bool              `json:"strict,omitempty"`
	Save       bool              `json:"save,omitempty"`
}

// ExpandBody is the request body of the expand route.
type ExpandBody struct {
	Template string  `json:"template" binding:"required"`
	Seed     *uint64 `json:"seed,omitempty"`
	Limit    int     `json:"limit,omitempty"`
}

// SelectionsBody is the request body of the disabled route.
type SelectionsBody struct {
	Selections domain.Selections `json:"selections"`
}

// LookupBody is the request body of the lookup route.
type LookupBody struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) listPacks(c *gin.Context) {
	packs, err := s.ports.Packs.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if packs == nil {
		packs = []domain.PackSummary{}
	}
	c.JSON(http.StatusOK, packs)
}

func (s *Server) importPack(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Code:    CodeBadRequest,
				Message: fmt.Sprintf("document exceeds %d bytes", maxDocumentBytes),
			})
			return
		}
		badRequest(c, err)
		return
	}

	pack, err := s.ports.Packs.ImportDocument(c.Request.Context(), body)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pack.Summary())
}

func (s *Server) getPack(c *gin.Context) {
	pack, err := s.ports.Packs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	doc, err := schema.Marshal(pack)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}

func (s *Server) removePack(c *gin.Context) {
	if err := s.ports.Packs.Remove(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) compose(c *gin.Context) {
	var body ComposeBody
	if err := bindOptional(c, &body); err != nil {
		badRequest(c, err)
		return
	}

	packID := c.Param("id")
	comp, err := s.ports.Compose.Compose(c.Request.Context(), driving.ComposeRequest{
		PackID:     packID,
		Template:   body.Template,
		Selections: body.Selections,
		Seed:       body.Seed,
		Mode:       body.Mode,
		Strict:     body.Strict,
		Save:       body.Save,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	mode := string(body.Mode)
	if mode == "" {
		mode = "configured"
	}
	compositionsTotal.WithLabelValues(packID, mode).Inc()
	c.JSON(http.StatusOK, comp)
}

func (s *Server) expand(c *gin.Context) {
	var body ExpandBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.ports.Compose.Expand(c.Request.Context(), driving.ExpandRequest{
		PackID:   c.Param("id"),
		Template: body.Template,
		Seed:     body.Seed,
		Limit:    body.Limit,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) disabled(c *gin.Context) {
	var body SelectionsBody
	if err := bindOptional(c, &body); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.ports.Compose.Disabled(c.Request.Context(), c.Param("id"), body.Selections)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) lookup(c *gin.Context) {
	var body LookupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.ports.Compose.Lookup(c.Request.Context(), c.Param("id"), body.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) history(c *gin.Context) {
	if s.ports.History == nil {
		handleServiceError(c, fmt.Errorf("history: %w", domain.ErrNotFound))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	packID := c.Param("id")
	if _, err := s.ports.Packs.Get(c.Request.Context(), packID); err != nil {
		handleServiceError(c, err)
		return
	}

	comps, err := s.ports.History.List(c.Request.Context(), packID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if comps == nil {
		comps = []domain.Composition{}
	}
	c.JSON(http.StatusOK, comps)
}

// bindOptional decodes a JSON body when one is present.
func bindOptional(c *gin.Context, v any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(v)
}
