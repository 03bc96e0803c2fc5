package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ops-portal/internal/dto"
	"ops-portal/internal/entities"
	"ops-portal/internal/services"
	"ops-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetTicketReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter, format := c.parseFilters(ctx)
	c.logger.Debug("Запрос на отчет по заявкам", zap.Any("filters", filter), zap.String("format", format))

	rows, total, err := c.reportService.GetTicketReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}

	return utils.SuccessResponse(ctx, rows, "Отчет успешно сформирован", http.StatusOK, total)
}

func (c *ReportController) parseFilters(ctx echo.Context) (entities.ReportFilter, string) {
	stdFilter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.ReportFilter{
		Page:    stdFilter.Page,
		PerPage: stdFilter.Limit,
	}
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		filter.Page = 1
		filter.PerPage = 100000 // Выгружаем все для экспорта
	}

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			filter.DateTo = &t
		}
	}
	if deptStr := ctx.QueryParam("department_id"); deptStr != "" {
		if id, err := strconv.ParseUint(deptStr, 10, 64); err == nil {
			filter.DepartmentID = &id
		}
	}
	if status := ctx.QueryParam("status"); status != "" {
		filter.Status = &status
	}

	return filter, format
}

var ticketReportHeaders = []string{
	"Номер", "Тема", "Департамент", "Автор", "Исполнитель", "Статус", "Приоритет", "Создана", "Решена",
}

func ticketRowToSlice(row dto.TicketReportRowDTO) []interface{} {
	dateFmt := "02.01.2006 15:04"
	var resolvedAt string
	if row.ResolvedAt != nil {
		resolvedAt = row.ResolvedAt.Format(dateFmt)
	}
	return []interface{}{
		row.Number, row.Title, row.DepartmentKey, row.CreatorFio, row.AssigneeFio.String,
		row.Status, row.Priority, row.CreatedAt.Format(dateFmt), resolvedAt,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.TicketReportRowDTO) error {
	f := excelize.NewFile()
	sheet := "Отчет по заявкам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &ticketReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", style)

	for i, item := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := ticketRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "E", 25)
	f.SetColWidth(sheet, "H", "I", 18)

	fileName := fmt.Sprintf("tickets_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
