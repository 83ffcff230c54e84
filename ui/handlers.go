package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	domaindataset "namecorrector/domain/dataset"
	"namecorrector/internal/correction"
	"namecorrector/internal/errors"
	"namecorrector/internal/i18n"
)

// multipartOverhead allows for boundaries and form fields around the file
const multipartOverhead = 64 * 1024

type tableView struct {
	Headers   []string
	Rows      [][]string
	Shown     int
	Total     int
	Truncated bool
}

type uploadView struct {
	Filename string
	Columns  []string
	Selected string
	Preview  tableView
}

type resultView struct {
	Filename string
	Summary  correction.Summary
	Preview  tableView
}

type pageView struct {
	Lang   string
	Intro  template.HTML
	Error  string
	Upload *uploadView
	Result *resultView
}

func (s *Server) preview(t *domaindataset.Table) tableView {
	head := t.Head(s.previewRows)
	return tableView{
		Headers:   head.Headers,
		Rows:      head.Rows,
		Shown:     head.RowCount(),
		Total:     t.RowCount(),
		Truncated: head.RowCount() < t.RowCount(),
	}
}

// page builds the view of the caller's session
func (s *Server) page(c *gin.Context) *pageView {
	view := &pageView{Lang: s.labels.Lang(), Intro: s.intro}

	sess, ok := currentSession(c)
	if !ok {
		return view
	}
	status := sess.GetStatus()
	view.Error = status.Error
	if table := sess.Table(); table != nil {
		view.Upload = &uploadView{
			Filename: status.Filename,
			Columns:  table.Headers,
			Selected: status.Column,
			Preview:  s.preview(table),
		}
	}
	if records, merged, export, ok := sess.Result(); ok {
		view.Result = &resultView{
			Filename: export.Filename,
			Summary:  correction.Summarize(records),
			Preview:  s.preview(merged),
		}
	}
	return view
}

// renderError shows the page with message and the status mapped from err
func (s *Server) renderError(c *gin.Context, err error, message string) {
	status := errors.HTTPStatus(err)
	s.logger.Warn("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	view := s.page(c)
	view.Error = message
	s.renderTemplate(c, status, "index.html", view)
}

// handleIndex renders the upload form and, when present, the current table and result
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", s.page(c))
}

// handleUpload parses the spreadsheet form field into the caller's session
func (s *Server) handleUpload(c *gin.Context) {
	if s.maxUpload > 0 {
		limit := s.maxUpload + multipartOverhead
		if c.Request.ContentLength > limit {
			err := errors.TooLarge(fmt.Sprintf("upload of %d bytes exceeds the %d byte limit", c.Request.ContentLength, s.maxUpload))
			s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	header, err := c.FormFile("spreadsheet")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			err := errors.TooLarge(fmt.Sprintf("upload exceeds the %d byte limit", s.maxUpload))
			s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
			return
		}
		s.renderError(c, errors.InvalidInput("no file uploaded"), s.labels.T(i18n.KeyNoFile))
		return
	}
	if s.maxUpload > 0 && header.Size > s.maxUpload {
		err := errors.TooLarge(fmt.Sprintf("file of %d bytes exceeds the %d byte limit", header.Size, s.maxUpload))
		s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
		return
	}

	file, err := header.Open()
	if err != nil {
		err = errors.Wrap(err, "failed to open uploaded file")
		s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
		return
	}
	defer file.Close()

	table, err := s.processor.ProcessUpload(&domaindataset.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		MimeType: header.Header.Get("Content-Type"),
		File:     file,
	})
	if err != nil {
		s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
		return
	}

	sess, err := s.ensureSession(c)
	if err != nil {
		s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
		return
	}
	sess.Load(header.Filename, table, s.processor.SuggestColumn(table))
	c.Redirect(http.StatusSeeOther, "/")
}

// handleCorrect runs the correction of the chosen column. The request stays
// open until every row has been queried.
func (s *Server) handleCorrect(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok || sess.Table() == nil {
		s.renderError(c, errors.InvalidInput("no spreadsheet uploaded"), s.labels.T(i18n.KeyNoFile))
		return
	}
	table := sess.Table()

	column := c.PostForm("column")
	if table.ColumnIndex(column) < 0 {
		err := errors.NotFound(fmt.Sprintf("column %q", column))
		s.renderError(c, err, s.labels.T(i18n.KeyFileError, err))
		return
	}

	sess.StartCorrection(column)
	result, err := s.processor.Correct(c.Request.Context(), table, column, sess.UpdateProgress)
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			sess.SetError(s.labels.T(i18n.KeyCancelled))
			s.logger.Info("correction of %q cancelled by client", column)
			return
		}
		message := s.labels.T(i18n.KeyFileError, err)
		sess.SetError(message)
		s.renderError(c, err, message)
		return
	}

	sess.Complete(result.Records, result.Table, result.Export)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleDownload serves the latest corrected workbook
func (s *Server) handleDownload(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		s.renderError(c, errors.NotFound("corrected file"), s.labels.T(i18n.KeyNoResult))
		return
	}
	_, _, export, ok := sess.Result()
	if !ok {
		s.renderError(c, errors.NotFound("corrected file"), s.labels.T(i18n.KeyNoResult))
		return
	}

	etag := `"` + export.Checksum.Short() + `"`
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// handleStatus reports the progress of the caller's session as JSON
func (s *Server) handleStatus(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	c.JSON(http.StatusOK, sess.GetStatus())
}
