package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-channels-api/internal/service"
)

var exportHeaders = []string{"Username", "Channel", "Channel code", "Score", "Answered", "Submitted"}

// ExportResults выгружает сводку результатов в CSV или Excel
// GET /admin/results/export?format=csv|xlsx
func (h *AdminHandler) ExportResults(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondError(c, http.StatusUnprocessableEntity, "format must be csv or xlsx")
		return
	}

	results, err := h.resultService.ListResults(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_results_%s", time.Now().Format("2006-01-02"))
	if format == "xlsx" {
		exportXLSX(c, results, filename)
		return
	}
	exportCSV(c, results, filename)
}

func exportRow(r service.ParticipantResult) []string {
	submitted := "No"
	if r.QuizSubmitted {
		submitted = "Yes"
	}
	return []string{
		sanitizeForExcel(r.Username),
		sanitizeForExcel(r.Channel),
		r.ChannelCode,
		strconv.Itoa(r.Score),
		strconv.Itoa(r.TotalQuestions),
		submitted,
	}
}

// exportCSV пишет CSV с BOM, чтобы Excel правильно распознал UTF-8
func exportCSV(c *gin.Context, results []service.ParticipantResult, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for _, r := range results {
		_ = writer.Write(exportRow(r))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Error().Err(err).Msg("[Export] Ошибка записи CSV")
	}
}

// exportXLSX пишет Excel файл через StreamWriter
func exportXLSX(c *gin.Context, results []service.ParticipantResult, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Error().Err(err).Msg("[Export] Ошибка переименования листа")
		respondError(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Error().Err(err).Msg("[Export] Ошибка создания StreamWriter")
		respondError(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Error().Err(err).Msg("[Export] Ошибка записи заголовков")
	}

	for i, r := range results {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		submitted := "No"
		if r.QuizSubmitted {
			submitted = "Yes"
		}
		row := []interface{}{
			sanitizeForExcel(r.Username),
			sanitizeForExcel(r.Channel),
			r.ChannelCode,
			r.Score,
			r.TotalQuestions,
			submitted,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Error().Err(err).Int("row", i+2).Msg("[Export] Ошибка записи строки")
		}
	}

	if err := sw.Flush(); err != nil {
		log.Error().Err(err).Msg("[Export] Ошибка при Flush")
		respondError(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("[Export] Ошибка записи Excel в response")
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
