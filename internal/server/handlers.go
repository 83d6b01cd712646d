package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajack/xlimport"
	"github.com/javajack/xlimport/internal/summary"
)

type skippedRow struct {
	Row    int    `json:"row"`
	Cell   string `json:"cell"`
	Header string `json:"header,omitempty"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Records    int          `json:"records"`
	Skipped    []skippedRow `json:"skipped,omitempty"`
	Warning    string       `json:"warning,omitempty"`
	ImportedAt time.Time    `json:"importedAt"`
}

func (s *Server) handleImport(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp importResponse
	err := s.importer.Import()
	switch {
	case err == nil:
	case errors.Is(err, xlimport.ErrEmptySheet):
		resp.Warning = err.Error()
	default:
		// the failed import emptied the list, so it no longer has a timestamp
		s.importedAt = time.Time{}
		c.JSON(statusForImportError(err), gin.H{"error": err.Error()})
		return
	}
	s.importedAt = time.Now().UTC()
	resp.ImportedAt = s.importedAt

	resp.Records = s.importer.Records().Len()
	for _, rowErr := range s.importer.Skipped() {
		resp.Skipped = append(resp.Skipped, skippedRow{
			Row:    rowErr.Row,
			Cell:   rowErr.Ref.String(),
			Header: rowErr.Header,
			Reason: rowErr.Reason,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func statusForImportError(err error) int {
	switch {
	case errors.Is(err, xlimport.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, xlimport.ErrUnrecognizedHeader),
		errors.Is(err, xlimport.ErrMissingHeader),
		errors.Is(err, xlimport.ErrMalformedRow),
		errors.Is(err, xlimport.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleRecords(c *gin.Context) {
	s.mu.Lock()
	records := s.importer.Records().Records()
	importedAt := s.importedAt
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"count":      len(records),
		"records":    records,
		"importedAt": importedAt,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	s.mu.Lock()
	records := s.importer.Records().Records()
	s.mu.Unlock()

	sum, err := summary.Compute(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}
