// Package handlers implements the HTTP API: upload a participant hours
// CSV, answer the per-project questions, solve, preview and download.
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javipalanca/burrocracia/internal/config"
	"github.com/javipalanca/burrocracia/internal/exporter"
	"github.com/javipalanca/burrocracia/internal/model"
	"github.com/javipalanca/burrocracia/internal/parser"
	"github.com/javipalanca/burrocracia/internal/solver"
	"github.com/javipalanca/burrocracia/internal/store"
)

// Handlers holds the API state.
type Handlers struct {
	cfg     *config.AppConfig
	store   *store.Store
	dataDir string
	started time.Time

	// Uploaded file cache. Each solve re-parses the raw bytes so no
	// table instance is ever aliased across requests.
	uploads   map[string]*uploadedFile
	uploadsMu sync.RWMutex

	// Solved result cache.
	results   map[string]*solvedResult
	resultsMu sync.RWMutex
}

type uploadedFile struct {
	FileName string
	Bytes    []byte
	Period   string
}

type solvedResult struct {
	CSVPath  string
	XLSXPath string
}

// New creates the handlers.
func New(cfg *config.AppConfig, st *store.Store, dataDir string) *Handlers {
	return &Handlers{
		cfg:     cfg,
		store:   st,
		dataDir: dataDir,
		started: time.Now(),
		uploads: make(map[string]*uploadedFile),
		results: make(map[string]*solvedResult),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.Status)

	router.POST("/upload", h.Upload)
	router.GET("/files/:fileId/questions", h.Questions)

	router.POST("/solve", h.Solve)

	router.GET("/results/:resultId/csv", h.DownloadCSV)
	router.GET("/results/:resultId/xlsx", h.DownloadXLSX)

	router.GET("/history", h.History)
}

// Response is the common JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

func errorResponseWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Status reports liveness.
func (h *Handlers) Status(c *gin.Context) {
	success(c, gin.H{
		"name":   "burrocracia",
		"status": "ok",
		"uptime": time.Since(h.started).Truncate(time.Second).String(),
	})
}

// ==================== Upload ====================

// Upload receives the participant hours CSV, parses it and returns the
// file handle, the billing period and the request questions.
func (h *Handlers) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "sube un fichero CSV")
		return
	}
	defer file.Close()

	if header.Size > 10*1024*1024 {
		errorResponse(c, 1003, "fichero demasiado grande, máximo 10MB")
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		errorResponse(c, 1002, "solo se admite formato .csv")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "no se pudo leer el fichero")
		return
	}

	p := parser.NewParser()
	if err := p.LoadFile(bytes.NewReader(content)); err != nil {
		errorResponse(c, 1002, "fichero no válido: "+err.Error())
		return
	}
	sheet := p.Sheet()

	first, last := sheet.Period()
	fileID := p.FileID()

	h.uploadsMu.Lock()
	h.uploads[fileID] = &uploadedFile{
		FileName: header.Filename,
		Bytes:    content,
		Period:   first + " - " + last,
	}
	h.uploadsMu.Unlock()

	success(c, gin.H{
		"fileId":      fileID,
		"fileName":    header.Filename,
		"period":      first + " - " + last,
		"workingDays": len(sheet.WorkingDays),
		"questions":   questionViews(solver.Questions(sheet)),
	})
}

// Questions re-derives the request questions for a cached file.
func (h *Handlers) Questions(c *gin.Context) {
	fileID := c.Param("fileId")

	upload, ok := h.getUpload(fileID)
	if !ok {
		errorResponse(c, 2001, "fichero no encontrado o expirado")
		return
	}

	p := parser.NewParser()
	if err := p.LoadFile(bytes.NewReader(upload.Bytes)); err != nil {
		errorResponse(c, 1002, "fichero no válido: "+err.Error())
		return
	}

	success(c, gin.H{
		"period":    upload.Period,
		"questions": questionViews(solver.Questions(p.Sheet())),
	})
}

func (h *Handlers) getUpload(fileID string) (*uploadedFile, bool) {
	h.uploadsMu.RLock()
	defer h.uploadsMu.RUnlock()
	upload, ok := h.uploads[fileID]
	return upload, ok
}

type questionView struct {
	Field  string `json:"field"`
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
}

func questionViews(qs []solver.Question) []questionView {
	views := make([]questionView, 0, len(qs))
	for _, q := range qs {
		v := questionView{Prompt: q.Prompt}
		switch q.Kind {
		case solver.QuestionProject:
			v.Kind = "project"
			v.Field = projectField(q.Key)
		case solver.QuestionSpecial:
			v.Kind = "special"
			v.Field = string(q.Special)
		case solver.QuestionNone:
			v.Kind = "none"
		}
		views = append(views, v)
	}
	return views
}

// projectField encodes a project key as a form field name.
func projectField(k model.ProjectKey) string {
	return fmt.Sprintf("%s|%d", k.Project, k.WorkPackage)
}

// ==================== Solve ====================

type solveRequest struct {
	FileID   string            `json:"fileId"`
	Projects map[string]string `json:"projects"` // "project|wp" -> total hours
	Specials map[string]string `json:"specials"` // special activity -> daily minimum
}

// Solve runs the feasibility check and the allocation for an uploaded
// file and stores the solved result for download.
func (h *Handlers) Solve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "parámetros no válidos")
		return
	}

	upload, ok := h.getUpload(req.FileID)
	if !ok {
		errorResponse(c, 2001, "fichero no encontrado o expirado")
		return
	}

	hours, specials, err := parseRequests(req)
	if err != nil {
		errorResponse(c, 1001, err.Error())
		return
	}

	// Fresh table per solve; uploads keep only the raw bytes.
	p := parser.NewParser()
	if err := p.LoadFile(bytes.NewReader(upload.Bytes)); err != nil {
		errorResponse(c, 1002, "fichero no válido: "+err.Error())
		return
	}
	sheet := p.Sheet()

	logID, err := h.store.CreateSolveLog(upload.FileName, upload.Period)
	if err != nil {
		log.Printf("failed to create solve log: %v", err)
	}

	s := solver.New(h.cfg.Caps())
	if err := s.Solve(sheet, specials, hours); err != nil {
		h.completeLog(logID, "", "infeasible", err.Error())

		var feaErr *solver.FeasibilityError
		if errors.As(err, &feaErr) {
			errorResponseWithData(c, 4001, feaErr.Error(), gin.H{
				"kind":  feaErr.Kind.String(),
				"lines": strings.Split(feaErr.Error(), "\n"),
			})
			return
		}
		var allocErr *solver.AllocationError
		if errors.As(err, &allocErr) {
			errorResponseWithData(c, 4002, allocErr.Error(), gin.H{
				"project":   allocErr.Key.String(),
				"remaining": allocErr.Remaining,
			})
			return
		}
		errorResponse(c, 4000, err.Error())
		return
	}

	resultID := uuid.New().String()
	result, err := h.saveResult(resultID, sheet)
	if err != nil {
		h.completeLog(logID, "", "error", err.Error())
		errorResponse(c, 3001, "no se pudo guardar el resultado")
		return
	}

	h.resultsMu.Lock()
	h.results[resultID] = result
	h.resultsMu.Unlock()

	h.completeLog(logID, resultID, "done", "")

	success(c, gin.H{
		"resultId": resultID,
		"csvUrl":   fmt.Sprintf("/api/results/%s/csv", resultID),
		"xlsxUrl":  fmt.Sprintf("/api/results/%s/xlsx", resultID),
		"preview":  previewRows(sheet),
	})
}

func (h *Handlers) completeLog(logID int64, resultID, status, errMsg string) {
	if logID == 0 {
		return
	}
	if err := h.store.CompleteSolveLog(logID, resultID, status, errMsg); err != nil {
		log.Printf("failed to complete solve log %d: %v", logID, err)
	}
}

// parseRequests turns the flat string maps of the request contract into
// the solver's typed requests. The core never sees raw form values.
func parseRequests(req solveRequest) (model.HourRequest, model.SpecialRequest, error) {
	hours := make(model.HourRequest, len(req.Projects))
	for field, value := range req.Projects {
		sep := strings.LastIndex(field, "|")
		if sep <= 0 {
			return nil, nil, fmt.Errorf("campo de proyecto no válido: %q", field)
		}
		wp, err := strconv.Atoi(field[sep+1:])
		if err != nil {
			return nil, nil, fmt.Errorf("working package no válido en %q", field)
		}
		v, err := parseRequestValue(value)
		if err != nil {
			return nil, nil, fmt.Errorf("horas no válidas para %q: %q", field[:sep], value)
		}
		hours[model.ProjectKey{Project: field[:sep], WorkPackage: wp}] = v
	}

	specials := make(model.SpecialRequest, len(req.Specials))
	for field, value := range req.Specials {
		act := model.SpecialActivity(field)
		if act.Code() == 0 {
			return nil, nil, fmt.Errorf("actividad no válida: %q", field)
		}
		v, err := parseRequestValue(value)
		if err != nil {
			return nil, nil, fmt.Errorf("horas no válidas para %q: %q", field, value)
		}
		specials[act] = v
	}

	return hours, specials, nil
}

// parseRequestValue accepts a non-negative hour figure or the -1
// sentinel, with either decimal separator.
func parseRequestValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if v == model.Unconstrained {
		return model.Unconstrained, nil
	}
	if v < 0 {
		return 0, fmt.Errorf("negative hours %q", s)
	}
	return v, nil
}

func (h *Handlers) saveResult(resultID string, sheet *model.Timesheet) (*solvedResult, error) {
	csvPath := filepath.Join(h.dataDir, "results", fmt.Sprintf("solved_%s.csv", resultID))
	f, err := os.Create(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create result csv: %w", err)
	}
	defer f.Close()
	if err := exporter.NewCSVExporter().Export(sheet, f); err != nil {
		return nil, fmt.Errorf("failed to export csv: %w", err)
	}

	xlsxPath := filepath.Join(h.dataDir, "results", fmt.Sprintf("solved_%s.xlsx", resultID))
	workbook, err := exporter.NewExcelExporter().Export(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to export xlsx: %w", err)
	}
	if err := workbook.SaveAs(xlsxPath); err != nil {
		return nil, fmt.Errorf("failed to save xlsx: %w", err)
	}

	return &solvedResult{CSVPath: csvPath, XLSXPath: xlsxPath}, nil
}

type previewRow struct {
	Project     string   `json:"project"`
	Activity    string   `json:"activity"`
	WorkPackage int      `json:"workPackage"`
	TotalHours  float64  `json:"totalHours"`
	Cells       []string `json:"cells"`
}

type preview struct {
	Days []string     `json:"days"`
	Rows []previewRow `json:"rows"`
}

func previewRows(sheet *model.Timesheet) preview {
	rows := make([]previewRow, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		cells := make([]string, 0, len(sheet.DayLabels))
		for _, label := range sheet.DayLabels {
			cells = append(cells, exporter.FormatHours(r.Hours[label]))
		}
		rows = append(rows, previewRow{
			Project:     r.Project,
			Activity:    r.Activity,
			WorkPackage: r.WorkPackage,
			TotalHours:  r.Total(),
			Cells:       cells,
		})
	}
	return preview{Days: sheet.DayLabels, Rows: rows}
}

// ==================== Downloads ====================

func (h *Handlers) getResult(resultID string) (*solvedResult, bool) {
	h.resultsMu.RLock()
	defer h.resultsMu.RUnlock()
	result, ok := h.results[resultID]
	return result, ok
}

// DownloadCSV serves the solved CSV.
func (h *Handlers) DownloadCSV(c *gin.Context) {
	result, ok := h.getResult(c.Param("resultId"))
	if !ok {
		c.String(http.StatusNotFound, "resultado no encontrado o expirado")
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", filepath.Base(result.CSVPath)))
	c.Header("Content-Type", "text/csv; charset=iso-8859-1")
	c.File(result.CSVPath)
}

// DownloadXLSX serves the solved workbook.
func (h *Handlers) DownloadXLSX(c *gin.Context) {
	result, ok := h.getResult(c.Param("resultId"))
	if !ok {
		c.String(http.StatusNotFound, "resultado no encontrado o expirado")
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", filepath.Base(result.XLSXPath)))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(result.XLSXPath)
}

// ==================== History ====================

// History lists the recent solve log entries.
func (h *Handlers) History(c *gin.Context) {
	logs, err := h.store.ListSolveLogs(50)
	if err != nil {
		errorResponse(c, 5001, "no se pudo leer el historial")
		return
	}
	success(c, gin.H{"logs": logs})
}
