package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"strbrowser/internal/errors"
	"strbrowser/internal/session"
	"strbrowser/internal/views"
	"strbrowser/ui/middleware"

	"github.com/gin-gonic/gin"
)

// isHTMX reports whether the request was issued by htmx
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// inputFrom reads the selection controls from query or form values. Absent controls are
// left unchanged.
func inputFrom(c *gin.Context) (session.Input, error) {
	var in session.Input
	if d, ok := c.GetPostForm("disease"); ok {
		in.Disease = &d
	} else if d, ok := c.GetQuery("disease"); ok {
		in.Disease = &d
	}

	raw, ok := c.GetPostForm("bin_width")
	if !ok {
		raw, ok = c.GetQuery("bin_width")
	}
	if ok {
		w, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return in, errors.ValidationError(fmt.Sprintf("bin width must be an integer, got %q", raw))
		}
		in.BinWidth = &w
	}
	return in, nil
}

// applyInput feeds the request's controls to the session. On error the previous selection
// stays in place and the returned view reflects it.
func (s *Server) applyInput(c *gin.Context, sess *session.Session) (session.View, error) {
	in, err := inputFrom(c)
	if err != nil {
		return sess.View(), err
	}
	if in.Disease == nil && in.BinWidth == nil {
		return sess.View(), nil
	}
	view, err := sess.Update(in)
	if err != nil {
		s.logger.Debug("[Dashboard] Rejected input for session %s: %v", sess.ID, err)
	}
	return view, err
}

// handleIndex renders the full dashboard page
func (s *Server) handleIndex(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	view, err := s.applyInput(c, sess)

	page := s.buildPage(view, gridQueryFrom(c.Request.URL.Query()))
	page.Panels.Notice = newPanelError(err)
	s.renderTemplate(c, http.StatusOK, "index.html", page)
}

// handlePanels re-renders the panel region after a control changed
func (s *Server) handlePanels(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	view, err := s.applyInput(c, sess)

	panels := buildPanels(view, gridQueryFrom(c.Request.URL.Query()))
	panels.Notice = newPanelError(err)
	s.renderTemplate(c, http.StatusOK, "panels", panels)
}

// handleSelection sets the selection from a form post
func (s *Server) handleSelection(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	view, err := s.applyInput(c, sess)

	if isHTMX(c) {
		panels := buildPanels(view, views.GridQuery{})
		panels.Notice = newPanelError(err)
		s.renderTemplate(c, http.StatusOK, "panels", panels)
		return
	}
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// handleTable renders the data grid fragment with the requested filters and sort
func (s *Server) handleTable(c *gin.Context) {
	view := middleware.SessionFrom(c).View()
	q := gridQueryFrom(c.Request.URL.Query())

	data := panelsData{Selection: view.Selection, GridQuery: q}
	if grid, err := views.BuildGrid(view.Alleles, q); err != nil {
		data.GridErr = newPanelError(err)
	} else {
		data.Grid = &grid
	}
	s.renderTemplate(c, http.StatusOK, "grid", data)
}

func (s *Server) handleExportXLSX(c *gin.Context) {
	s.export(c, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (s *Server) handleExportTSV(c *gin.Context) {
	s.export(c, "tsv", "text/tab-separated-values; charset=utf-8")
}

// export downloads the session's filtered grid
func (s *Server) export(c *gin.Context, format, contentType string) {
	view := middleware.SessionFrom(c).View()
	grid, err := views.BuildGrid(view.Alleles, gridQueryFrom(c.Request.URL.Query()))
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return
	}

	filename := exportFilename(view.Selection.Disease, format)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, filename, url.PathEscape(filename)))
	c.Status(http.StatusOK)

	switch format {
	case "xlsx":
		err = views.WriteGridXLSX(c.Writer, grid)
	default:
		err = views.WriteGridTSV(c.Writer, grid)
	}
	if err != nil {
		s.logger.Error("[Export] Failed to write %s for %s: %v", format, view.Selection.Disease, err)
		return
	}
	s.logger.Debug("[Export] Wrote %d rows of %s as %s", grid.Shown, view.Selection.Disease, format)
}
