package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respond writes v as JSON, or the mapped error status and body
func (s *Server) respond(c *gin.Context, v interface{}, err error) {
	if err != nil {
		s.logger.Debug("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(statusFor(err), errorBody(err))
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleAPIDiseases(c *gin.Context) {
	c.JSON(http.StatusOK, s.queries.diseases())
}

func (s *Server) handleAPIAlleles(c *gin.Context) {
	rows, err := s.queries.alleles(c.Query("disease"))
	s.respond(c, rows, err)
}

func (s *Server) handleAPIMotifs(c *gin.Context) {
	motifs, err := s.queries.motifs(c.Query("disease"))
	s.respond(c, motifs, err)
}

func (s *Server) handleAPISummary(c *gin.Context) {
	summary, err := s.queries.summary(c.Query("disease"))
	s.respond(c, summary, err)
}

func (s *Server) handleAPIHistogram(c *gin.Context) {
	hist, err := s.queries.histogram(c.Query("disease"), c.Query("bin_width"))
	s.respond(c, hist, err)
}

func (s *Server) handleAPIHeatmap(c *gin.Context) {
	heatmap, err := s.queries.heatmap(c.Query("disease"))
	s.respond(c, heatmap, err)
}

// handleAPITable accepts one filter parameter per grid column plus sort
func (s *Server) handleAPITable(c *gin.Context) {
	grid, err := s.queries.table(c.Query("disease"), c.Request.URL.Query())
	s.respond(c, grid, err)
}
