package http

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/formulary"
	"github.com/gin-gonic/gin"
)

// functionSummary is one row of the function list.
type functionSummary struct {
	Name             string               `json:"name"`
	Category         string               `json:"category"`
	ShortDescription string               `json:"shortDescription"`
	Difficulty       formulary.Difficulty `json:"difficulty"`
	Bookmarked       bool                 `json:"bookmarked"`
}

type guideSummary struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Category         formulary.Difficulty `json:"category"`
	ShortDescription string               `json:"shortDescription"`
}

type listFunctionsResponse struct {
	Count     int               `json:"count"`
	Functions []functionSummary `json:"functions"`
}

type functionResponse struct {
	Function   *formulary.Function     `json:"function"`
	Related    []formulary.RelatedLink `json:"related"`
	Bookmarked bool                    `json:"bookmarked"`
}

type guideResponse struct {
	Guide  *formulary.Guide  `json:"guide"`
	Blocks []formulary.Block `json:"blocks"`
}

type toggleResponse struct {
	Name       string   `json:"name"`
	Bookmarked bool     `json:"bookmarked"`
	Bookmarks  []string `json:"bookmarks"`
}

type explainRequest struct {
	Formula string `json:"formula"`
}

type routeResponse struct {
	formulary.Route
	Fragment string `json:"fragment"`
}

type playgroundResponse struct {
	Formula string               `json:"formula"`
	Result  string               `json:"result"`
	Sheet   formulary.SampleData `json:"sheet"`
	Enabled bool                 `json:"enabled"`
}

func (s *Server) handleListFunctions(c *gin.Context) {
	state := formulary.FilterState{SearchText: c.Query("q")}
	if category, ok := c.GetQuery("category"); ok && category != "" {
		state.Category = &category
	}
	if raw := c.Query("bookmarked"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.Error(c, formulary.Errorf(formulary.EINVALID, "bookmarked must be a boolean"))
			return
		}
		state.BookmarksOnly = v
	}

	bookmarks := s.bookmarks.Bookmarks()
	fns := formulary.FilterFunctions(s.catalog.Functions(), bookmarks, state)

	resp := listFunctionsResponse{
		Count:     len(fns),
		Functions: make([]functionSummary, 0, len(fns)),
	}
	for _, f := range fns {
		resp.Functions = append(resp.Functions, functionSummary{
			Name:             f.Name,
			Category:         f.Category,
			ShortDescription: f.ShortDescription,
			Difficulty:       f.Difficulty,
			Bookmarked:       bookmarks.Has(f.Name),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetFunction(c *gin.Context) {
	f, ok := s.catalog.FindFunction(c.Param("name"))
	if !ok {
		s.Error(c, formulary.Errorf(formulary.ENOTFOUND, "function %q not found", c.Param("name")))
		return
	}
	related := formulary.ResolveRelated(s.catalog.Functions(), f)
	if related == nil {
		related = []formulary.RelatedLink{}
	}
	c.JSON(http.StatusOK, functionResponse{
		Function:   f,
		Related:    related,
		Bookmarked: s.bookmarks.Bookmarks().Has(f.Name),
	})
}

func (s *Server) handleListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.catalog.Categories()})
}

func (s *Server) handleListGuides(c *gin.Context) {
	guides := s.catalog.Guides()
	out := make([]guideSummary, 0, len(guides))
	for _, g := range guides {
		out = append(out, guideSummary{
			ID:               g.ID,
			Title:            g.Title,
			Category:         g.Category,
			ShortDescription: g.ShortDescription,
		})
	}
	c.JSON(http.StatusOK, gin.H{"guides": out})
}

func (s *Server) handleGetGuide(c *gin.Context) {
	g, ok := s.catalog.FindGuide(c.Param("id"))
	if !ok {
		s.Error(c, formulary.Errorf(formulary.ENOTFOUND, "guide %q not found", c.Param("id")))
		return
	}
	blocks := formulary.ParseGuideContent(g.Content)
	if blocks == nil {
		blocks = []formulary.Block{}
	}
	c.JSON(http.StatusOK, guideResponse{Guide: g, Blocks: blocks})
}

func (s *Server) handleListBookmarks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookmarks": s.bookmarks.Bookmarks().Names()})
}

// handleToggleBookmark toggles the canonical catalog name so "sum" and "SUM"
// address the same bookmark.
func (s *Server) handleToggleBookmark(c *gin.Context) {
	f, ok := s.catalog.FindFunction(c.Param("name"))
	if !ok {
		s.Error(c, formulary.Errorf(formulary.ENOTFOUND, "function %q not found", c.Param("name")))
		return
	}
	set := s.bookmarks.ToggleBookmark(c.Request.Context(), f.Name)
	c.JSON(http.StatusOK, toggleResponse{
		Name:       f.Name,
		Bookmarked: set.Has(f.Name),
		Bookmarks:  set.Names(),
	})
}

// handleExplain runs one explain request. Explainer failures are not HTTP
// errors: the response carries the failed status and fallback text.
func (s *Server) handleExplain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.Error(c, formulary.Errorf(formulary.EINVALID, "invalid request body"))
		return
	}
	if !formulary.CanExplain(req.Formula) {
		s.Error(c, formulary.Errorf(formulary.EINVALID, "formula required"))
		return
	}
	if !s.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many explain requests, try again shortly"})
		return
	}

	done, _ := formulary.NewPlayground(s.explainer).Explain(c.Request.Context(), req.Formula)
	c.JSON(http.StatusOK, done)
}

func (s *Server) handleRoute(c *gin.Context) {
	r := formulary.Resolve(s.catalog, formulary.ParseRoute(c.Query("fragment")))
	c.JSON(http.StatusOK, routeResponse{Route: r, Fragment: r.Fragment()})
}

func (s *Server) handlePlayground(c *gin.Context) {
	c.JSON(http.StatusOK, playgroundResponse{
		Formula: formulary.DefaultFormula,
		Result:  formulary.DefaultResult,
		Sheet:   formulary.SampleSheet,
		Enabled: s.explainer != nil,
	})
}
