package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "posfinance/internal/errors"
	"posfinance/internal/period"
	"posfinance/internal/services"
)

// ReportHandler serves the finance reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportKindParam is the report kind path segment.
type ReportKindParam struct {
	Kind string `uri:"kind" binding:"required,report_kind"`
}

// PeriodQuery selects the reporting period. start_date and end_date are only
// read for the custom period.
type PeriodQuery struct {
	Period    string `form:"period" binding:"omitempty,period_keyword"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ReportQueryParams are the query parameters of a report request.
type ReportQueryParams struct {
	PeriodQuery
	GroupBy string `form:"group_by"`
}

func (q PeriodQuery) dates() (start, end *time.Time, err error) {
	if start, err = parseOptionalDate("start_date", q.StartDate); err != nil {
		return nil, nil, err
	}
	if end, err = parseOptionalDate("end_date", q.EndDate); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// GetReport handles generating a report.
// @Summary     Generate report
// @Description Cash flow, profit and loss, product profit, expense, sales, tax and budget reports over a period
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       kind       path  string true  "Report kind"
// @Param       group_by   query string false "Row grouping, defaults per kind"
// @Param       period     query string false "current, last_month, quarter, year or custom (default current)"
// @Param       start_date query string false "Custom period start (YYYY-MM-DD)"
// @Param       end_date   query string false "Custom period end (YYYY-MM-DD)"
// @Success     200 {object} services.Report "Report"
// @Failure     400 {object} ErrorResponse "Invalid input, range or grouping"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/{kind} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var kind ReportKindParam
	if err := c.ShouldBindUri(&kind); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown report kind"))
		return
	}

	var params ReportQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	start, end, err := params.dates()
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.Generate(a, services.ReportQuery{
		Kind:        services.ReportKind(kind.Kind),
		GroupBy:     services.GroupBy(params.GroupBy),
		Period:      period.Keyword(params.Period),
		CustomStart: start,
		CustomEnd:   end,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetComparative handles comparing a period with the one before it.
// @Summary     Comparative report
// @Description Revenue, profit, expense and budget spend of a period against the previous period of equal length
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period     query string false "current, last_month, quarter, year or custom (default current)"
// @Param       start_date query string false "Custom period start (YYYY-MM-DD)"
// @Param       end_date   query string false "Custom period end (YYYY-MM-DD)"
// @Success     200 {object} period.ComparisonReport "Comparison"
// @Failure     400 {object} ErrorResponse "Invalid input or range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /reports/comparative [get]
func (h *ReportHandler) GetComparative(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	start, end, err := q.dates()
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.Comparative(a, period.Keyword(q.Period), start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
