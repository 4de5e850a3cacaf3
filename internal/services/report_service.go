package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"posfinance/internal/actor"
	apperrors "posfinance/internal/errors"
	"posfinance/internal/ledger"
	"posfinance/internal/models"
	"posfinance/internal/period"
)

// ReportKind names one of the finance reports.
type ReportKind string

const (
	ReportCashFlow        ReportKind = "cash_flow"
	ReportProfitLoss      ReportKind = "profit_loss"
	ReportProfitAnalysis  ReportKind = "profit_analysis"
	ReportExpenseAnalysis ReportKind = "expense_analysis"
	ReportSalesAnalytics  ReportKind = "sales_analytics"
	ReportTax             ReportKind = "tax"
	ReportBudgetVariance  ReportKind = "budget_variance"
	ReportBudgetCategory  ReportKind = "budget_category"
	ReportBudgetTimeline  ReportKind = "budget_timeline"
)

// GroupBy names how report rows are bucketed.
type GroupBy string

const (
	GroupByDay      GroupBy = "day"
	GroupByWeek     GroupBy = "week"
	GroupByMonth    GroupBy = "month"
	GroupByCategory GroupBy = "category"
	GroupByProduct  GroupBy = "product"
	GroupByTaxRate  GroupBy = "tax_rate"
	GroupByBudget   GroupBy = "budget"
)

// reportGroupings lists the groupings each kind accepts. The first one is the
// default.
var reportGroupings = map[ReportKind][]GroupBy{
	ReportCashFlow:        {GroupByMonth, GroupByWeek, GroupByDay},
	ReportProfitLoss:      {GroupByMonth, GroupByWeek, GroupByDay},
	ReportProfitAnalysis:  {GroupByProduct},
	ReportExpenseAnalysis: {GroupByCategory, GroupByDay, GroupByWeek, GroupByMonth},
	ReportSalesAnalytics:  {GroupByDay, GroupByWeek, GroupByMonth},
	ReportTax:             {GroupByTaxRate, GroupByMonth},
	ReportBudgetVariance:  {GroupByBudget},
	ReportBudgetCategory:  {GroupByCategory},
	ReportBudgetTimeline:  {GroupByMonth, GroupByWeek, GroupByDay},
}

// Valid reports whether k is a known report kind.
func (k ReportKind) Valid() bool {
	_, ok := reportGroupings[k]
	return ok
}

// ResolveGroupBy returns g, or the default grouping of k when g is empty.
func (k ReportKind) ResolveGroupBy(g GroupBy) (GroupBy, error) {
	allowed, ok := reportGroupings[k]
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown report kind %q", k))
	}
	if g == "" {
		return allowed[0], nil
	}
	for _, a := range allowed {
		if a == g {
			return g, nil
		}
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("group_by %q is not supported for %s reports", g, k))
}

// ReportRow is one bucket of a report.
type ReportRow struct {
	Key    string                     `json:"key"`
	Label  string                     `json:"label"`
	Values map[string]decimal.Decimal `json:"values"`
	Ratios map[string]*float64        `json:"ratios,omitempty"`
}

// Report is the result of a report query.
type Report struct {
	Kind    ReportKind                 `json:"kind"`
	GroupBy GroupBy                    `json:"group_by"`
	Period  period.ReportPeriod        `json:"period"`
	Rows    []ReportRow                `json:"rows"`
	Totals  map[string]decimal.Decimal `json:"totals"`
}

// Comparative report metrics.
const (
	MetricRevenue     = "revenue"
	MetricSalesCount  = "sales_count"
	MetricTax         = "tax"
	MetricCostOfGoods = "cost_of_goods"
	MetricGrossProfit = "gross_profit"
	MetricExpenses    = "expenses"
	MetricNetProfit   = "net_profit"
	MetricBudgetSpend = "budget_spend"
)

var hundred = decimal.NewFromInt(100)

// reportService aggregates sales, expenses and budgets into reports. Rows are
// loaded for the period and summed with exact decimal arithmetic.
type reportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db, now: time.Now}
}

// Generate resolves the query period and grouping and builds the report.
func (s *reportService) Generate(a actor.Actor, q ReportQuery) (*Report, error) {
	if err := a.Require(actor.PermReportsRead); err != nil {
		return nil, err
	}

	groupBy, err := q.Kind.ResolveGroupBy(q.GroupBy)
	if err != nil {
		return nil, err
	}
	p, err := period.Derive(q.Period, s.now().UTC(), q.CustomStart, q.CustomEnd)
	if err != nil {
		return nil, err
	}

	var rows []ReportRow
	var totals map[string]decimal.Decimal
	switch q.Kind {
	case ReportCashFlow:
		rows, totals, err = s.cashFlow(p, groupBy)
	case ReportProfitLoss:
		rows, totals, err = s.profitLoss(p, groupBy)
	case ReportProfitAnalysis:
		rows, totals, err = s.profitAnalysis(p)
	case ReportExpenseAnalysis:
		rows, totals, err = s.expenseAnalysis(p, groupBy)
	case ReportSalesAnalytics:
		rows, totals, err = s.salesAnalytics(p, groupBy)
	case ReportTax:
		rows, totals, err = s.taxReport(p, groupBy)
	case ReportBudgetVariance:
		rows, totals, err = s.budgetVariance(p)
	case ReportBudgetCategory:
		rows, totals, err = s.budgetCategory(p)
	case ReportBudgetTimeline:
		rows, totals, err = s.budgetTimeline(p, groupBy)
	}
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []ReportRow{}
	}
	return &Report{Kind: q.Kind, GroupBy: groupBy, Period: p, Rows: rows, Totals: totals}, nil
}

// Comparative measures the headline metrics of a period and of the period
// before it.
func (s *reportService) Comparative(a actor.Actor, keyword period.Keyword, customStart, customEnd *time.Time) (*period.ComparisonReport, error) {
	if err := a.Require(actor.PermReportsRead); err != nil {
		return nil, err
	}

	current, err := period.Derive(keyword, s.now().UTC(), customStart, customEnd)
	if err != nil {
		return nil, err
	}
	previous := period.Previous(current)

	mCurrent, err := s.metrics(current)
	if err != nil {
		return nil, err
	}
	mPrevious, err := s.metrics(previous)
	if err != nil {
		return nil, err
	}

	report := period.ComparePeriods(current, previous, mCurrent, mPrevious)
	return &report, nil
}

func (s *reportService) metrics(p period.ReportPeriod) (map[string]decimal.Decimal, error) {
	sales, err := s.loadSales(p)
	if err != nil {
		return nil, err
	}
	expenses, err := s.loadExpenses(p)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadBudgetTransactions(p)
	if err != nil {
		return nil, err
	}

	m := map[string]decimal.Decimal{
		MetricRevenue:     decimal.Zero,
		MetricSalesCount:  decimal.NewFromInt(int64(len(sales))),
		MetricTax:         decimal.Zero,
		MetricCostOfGoods: decimal.Zero,
		MetricExpenses:    decimal.Zero,
		MetricBudgetSpend: decimal.Zero,
	}
	for _, sale := range sales {
		m[MetricRevenue] = m[MetricRevenue].Add(netRevenue(sale))
		m[MetricTax] = m[MetricTax].Add(sale.TaxAmount)
		m[MetricCostOfGoods] = m[MetricCostOfGoods].Add(costOfGoods(sale))
	}
	for _, e := range expenses {
		m[MetricExpenses] = m[MetricExpenses].Add(e.Amount)
	}
	for _, e := range entries {
		m[MetricBudgetSpend] = m[MetricBudgetSpend].Add(e.Amount)
	}
	m[MetricGrossProfit] = m[MetricRevenue].Sub(m[MetricCostOfGoods])
	m[MetricNetProfit] = m[MetricGrossProfit].Sub(m[MetricExpenses])
	return m, nil
}

// cashFlow compares money taken at the till with money spent, per bucket,
// with a running balance across buckets.
func (s *reportService) cashFlow(p period.ReportPeriod, g GroupBy) ([]ReportRow, map[string]decimal.Decimal, error) {
	sales, err := s.loadSales(p)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.loadExpenses(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, sale := range sales {
		rs.get(timeBucket(sale.SaleDate, g)).add("inflow", sale.TotalAmount)
	}
	for _, e := range expenses {
		rs.get(timeBucket(e.ExpenseDate, g)).add("outflow", e.Amount)
	}

	rows := rs.sortedByKey()
	totals := zeroTotals("inflow", "outflow", "net")
	balance := decimal.Zero
	for i := range rows {
		r := &rows[i]
		r.fill("inflow", "outflow")
		net := r.Values["inflow"].Sub(r.Values["outflow"])
		balance = balance.Add(net)
		r.Values["net"] = net
		r.Values["running_balance"] = balance
		totals.addAll(r.Values, "inflow", "outflow", "net")
	}
	return rows, totals, nil
}

// profitLoss reports revenue net of tax and discounts, cost of goods sold,
// operating expenses and the resulting profits per bucket.
func (s *reportService) profitLoss(p period.ReportPeriod, g GroupBy) ([]ReportRow, map[string]decimal.Decimal, error) {
	sales, err := s.loadSales(p)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.loadExpenses(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, sale := range sales {
		r := rs.get(timeBucket(sale.SaleDate, g))
		r.add("revenue", netRevenue(sale))
		r.add("cost_of_goods", costOfGoods(sale))
	}
	for _, e := range expenses {
		rs.get(timeBucket(e.ExpenseDate, g)).add("expenses", e.Amount)
	}

	rows := rs.sortedByKey()
	totals := zeroTotals("revenue", "cost_of_goods", "gross_profit", "expenses", "net_profit")
	for i := range rows {
		r := &rows[i]
		r.fill("revenue", "cost_of_goods", "expenses")
		setProfits(r.Values)
		r.Ratios = profitRatios(r.Values)
		totals.addAll(r.Values, "revenue", "cost_of_goods", "expenses")
	}
	setProfits(totals)
	return rows, totals, nil
}

// profitAnalysis reports gross profit and margin per product.
func (s *reportService) profitAnalysis(p period.ReportPeriod) ([]ReportRow, map[string]decimal.Decimal, error) {
	sales, err := s.loadSales(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, sale := range sales {
		for _, item := range sale.Items {
			r := rs.get(strings.ToLower(item.ProductName), item.ProductName)
			r.add("quantity", decimal.NewFromInt(item.Quantity))
			r.add("revenue", item.TotalPrice)
			r.add("cost", item.CostPrice.Mul(decimal.NewFromInt(item.Quantity)))
		}
	}

	rows := rs.sortedByLabel()
	totals := zeroTotals("quantity", "revenue", "cost", "gross_profit")
	for i := range rows {
		r := &rows[i]
		r.Values["gross_profit"] = r.Values["revenue"].Sub(r.Values["cost"])
		r.Ratios = map[string]*float64{"margin": percentOf(r.Values["gross_profit"], r.Values["revenue"])}
		totals.addAll(r.Values, "quantity", "revenue", "cost", "gross_profit")
	}
	return rows, totals, nil
}

// expenseAnalysis reports expenses per category or per time bucket with each
// row's share of the total.
func (s *reportService) expenseAnalysis(p period.ReportPeriod, g GroupBy) ([]ReportRow, map[string]decimal.Decimal, error) {
	expenses, err := s.loadExpenses(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, e := range expenses {
		var r *ReportRow
		if g == GroupByCategory {
			r = rs.get(categoryBucket(e.CategoryID, e.Category))
		} else {
			r = rs.get(timeBucket(e.ExpenseDate, g))
		}
		r.add("amount", e.Amount)
		r.add("count", decimal.NewFromInt(1))
	}

	var rows []ReportRow
	if g == GroupByCategory {
		rows = rs.sortedByLabel()
	} else {
		rows = rs.sortedByKey()
	}

	totals := zeroTotals("amount", "count")
	for _, r := range rows {
		totals.addAll(r.Values, "amount", "count")
	}
	for i := range rows {
		rows[i].Ratios = map[string]*float64{"share": percentOf(rows[i].Values["amount"], totals["amount"])}
	}
	return rows, totals, nil
}

// salesAnalytics reports ticket counts, revenue and average ticket per bucket.
func (s *reportService) salesAnalytics(p period.ReportPeriod, g GroupBy) ([]ReportRow, map[string]decimal.Decimal, error) {
	sales, err := s.loadSales(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, sale := range sales {
		r := rs.get(timeBucket(sale.SaleDate, g))
		r.add("sales_count", decimal.NewFromInt(1))
		r.add("revenue", sale.TotalAmount)
		for _, item := range sale.Items {
			r.add("items_sold", decimal.NewFromInt(item.Quantity))
		}
	}

	rows := rs.sortedByKey()
	totals := zeroTotals("sales_count", "revenue", "items_sold")
	for i := range rows {
		r := &rows[i]
		r.fill("items_sold")
		r.Values["average_ticket"] = averageTicket(r.Values["revenue"], r.Values["sales_count"])
		totals.addAll(r.Values, "sales_count", "revenue", "items_sold")
	}
	totals["average_ticket"] = averageTicket(totals["revenue"], totals["sales_count"])
	return rows, totals, nil
}

// taxReport reports taxable sales and tax collected per tax rate, or per
// month across all rates.
func (s *reportService) taxReport(p period.ReportPeriod, g GroupBy) ([]ReportRow, map[string]decimal.Decimal, error) {
	sales, err := s.loadSales(p)
	if err != nil {
		return nil, nil, err
	}

	var rates []models.TaxRate
	if err := s.db.Unscoped().Find(&rates).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[string]models.TaxRate, len(rates))
	for _, r := range rates {
		byID[r.ID] = r
	}

	rs := newRowSet()
	for _, sale := range sales {
		for _, item := range sale.Items {
			var r *ReportRow
			rate, taxed := models.TaxRate{}, false
			if item.TaxRateID != nil {
				rate, taxed = byID[*item.TaxRateID]
			}

			switch {
			case g == GroupByMonth:
				r = rs.get(timeBucket(sale.SaleDate, g))
			case taxed:
				r = rs.get(rate.ID, rate.Name)
				r.Values["rate"] = rate.Rate
			default:
				r = rs.get("exempt", "Exempt")
				r.Values["rate"] = decimal.Zero
			}

			r.add("taxable_amount", item.TotalPrice)
			tax := decimal.Zero
			if taxed {
				tax = item.TotalPrice.Mul(rate.Rate).Div(hundred).Round(2)
			}
			r.add("tax_collected", tax)
		}
	}

	var rows []ReportRow
	if g == GroupByMonth {
		rows = rs.sortedByKey()
	} else {
		rows = rs.sortedByLabel()
	}
	totals := zeroTotals("taxable_amount", "tax_collected")
	for _, r := range rows {
		totals.addAll(r.Values, "taxable_amount", "tax_collected")
	}
	return rows, totals, nil
}

// budgetVariance reports every budget overlapping the period with its
// variance.
func (s *reportService) budgetVariance(p period.ReportPeriod) ([]ReportRow, map[string]decimal.Decimal, error) {
	budgets, err := s.loadBudgets(p)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]ReportRow, 0, len(budgets))
	totals := zeroTotals("budgeted", "actual", "variance")
	for i := range budgets {
		b := &budgets[i]
		v := ledger.BudgetVariance(b)
		progress := ledger.BudgetTimeProgress(b, s.now())
		elapsed := progress.PercentElapsed
		row := ReportRow{
			Key:   b.ID,
			Label: b.Name,
			Values: map[string]decimal.Decimal{
				"budgeted": b.TotalBudgetAmount,
				"actual":   b.TotalActualAmount,
				"variance": v.Amount,
			},
			Ratios: map[string]*float64{
				"variance_pct": v.Percentage,
				"utilization":  percentOf(b.TotalActualAmount, b.TotalBudgetAmount),
				"time_elapsed": &elapsed,
			},
		}
		totals.addAll(row.Values, "budgeted", "actual", "variance")
		rows = append(rows, row)
	}
	return rows, totals, nil
}

// budgetCategory reports budgeted and actual amounts per category across the
// items of every budget overlapping the period.
func (s *reportService) budgetCategory(p period.ReportPeriod) ([]ReportRow, map[string]decimal.Decimal, error) {
	budgets, err := s.loadBudgets(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, b := range budgets {
		for _, item := range b.Items {
			r := rs.get(categoryBucket(item.CategoryID, item.Category))
			r.add("budgeted", item.BudgetedAmount)
			r.add("actual", item.ActualAmount)
			r.add("items", decimal.NewFromInt(1))
		}
	}

	rows := rs.sortedByLabel()
	totals := zeroTotals("budgeted", "actual", "variance")
	for i := range rows {
		r := &rows[i]
		v := ledger.ComputeVariance(r.Values["budgeted"], r.Values["actual"])
		r.Values["variance"] = v.Amount
		r.Ratios = map[string]*float64{"variance_pct": v.Percentage}
		totals.addAll(r.Values, "budgeted", "actual", "variance")
	}
	return rows, totals, nil
}

// budgetTimeline reports budget ledger spending per bucket with a cumulative
// total.
func (s *reportService) budgetTimeline(p period.ReportPeriod, g GroupBy) ([]ReportRow, map[string]decimal.Decimal, error) {
	entries, err := s.loadBudgetTransactions(p)
	if err != nil {
		return nil, nil, err
	}

	rs := newRowSet()
	for _, e := range entries {
		r := rs.get(timeBucket(e.TransactionDate, g))
		r.add("amount", e.Amount)
		r.add("count", decimal.NewFromInt(1))
	}

	rows := rs.sortedByKey()
	totals := zeroTotals("amount", "count")
	cumulative := decimal.Zero
	for i := range rows {
		cumulative = cumulative.Add(rows[i].Values["amount"])
		rows[i].Values["cumulative"] = cumulative
		totals.addAll(rows[i].Values, "amount", "count")
	}
	return rows, totals, nil
}

func (s *reportService) loadSales(p period.ReportPeriod) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Preload("Items").
		Where("status = ? AND sale_date >= ? AND sale_date < ?", models.SaleStatusCompleted, p.Start, p.EndExclusive()).
		Order("sale_date ASC").
		Find(&sales).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sales, nil
}

func (s *reportService) loadExpenses(p period.ReportPeriod) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("expense_date >= ? AND expense_date < ?", p.Start, p.EndExclusive()).
		Order("expense_date ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// loadBudgets returns budgets whose range overlaps the period.
func (s *reportService) loadBudgets(p period.ReportPeriod) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.Preload("Items").
		Preload("Items.Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("start_date < ? AND end_date >= ?", p.EndExclusive(), p.Start).
		Order("start_date ASC, name ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

func (s *reportService) loadBudgetTransactions(p period.ReportPeriod) ([]models.BudgetTransaction, error) {
	var entries []models.BudgetTransaction
	err := s.db.
		Where("transaction_date >= ? AND transaction_date < ?", p.Start, p.EndExclusive()).
		Order("transaction_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// rowSet accumulates report rows by key.
type rowSet struct {
	rows map[string]*ReportRow
}

func newRowSet() *rowSet {
	return &rowSet{rows: make(map[string]*ReportRow)}
}

func (rs *rowSet) get(key, label string) *ReportRow {
	r, ok := rs.rows[key]
	if !ok {
		r = &ReportRow{Key: key, Label: label, Values: make(map[string]decimal.Decimal)}
		rs.rows[key] = r
	}
	return r
}

func (rs *rowSet) sortedByKey() []ReportRow {
	out := rs.list()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (rs *rowSet) sortedByLabel() []ReportRow {
	out := rs.list()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func (rs *rowSet) list() []ReportRow {
	out := make([]ReportRow, 0, len(rs.rows))
	for _, r := range rs.rows {
		out = append(out, *r)
	}
	return out
}

func (r *ReportRow) add(name string, v decimal.Decimal) {
	r.Values[name] = r.Values[name].Add(v)
}

// fill sets missing values to zero.
func (r *ReportRow) fill(names ...string) {
	for _, n := range names {
		if _, ok := r.Values[n]; !ok {
			r.Values[n] = decimal.Zero
		}
	}
}

type totalSet map[string]decimal.Decimal

func zeroTotals(names ...string) totalSet {
	t := make(totalSet, len(names))
	for _, n := range names {
		t[n] = decimal.Zero
	}
	return t
}

func (t totalSet) addAll(values map[string]decimal.Decimal, names ...string) {
	for _, n := range names {
		t[n] = t[n].Add(values[n])
	}
}

// timeBucket returns the sortable key and display label of t's bucket.
// Weeks are ISO weeks.
func timeBucket(t time.Time, g GroupBy) (string, string) {
	t = t.UTC()
	switch g {
	case GroupByDay:
		return t.Format("2006-01-02"), t.Format("Jan 2, 2006")
	case GroupByWeek:
		year, week := t.ISOWeek()
		monday := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		return fmt.Sprintf("%d-W%02d", year, week), "Week of " + monday.Format("Jan 2, 2006")
	default:
		return t.Format("2006-01"), t.Format("January 2006")
	}
}

func categoryBucket(categoryID *string, category *models.Category) (string, string) {
	if categoryID == nil {
		return "uncategorized", "Uncategorized"
	}
	if category == nil {
		return *categoryID, *categoryID
	}
	return category.ID, category.Name
}

func netRevenue(sale models.Sale) decimal.Decimal {
	return sale.Subtotal.Sub(sale.DiscountAmount)
}

func costOfGoods(sale models.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, item := range sale.Items {
		total = total.Add(item.CostPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

func setProfits(values map[string]decimal.Decimal) {
	values["gross_profit"] = values["revenue"].Sub(values["cost_of_goods"])
	values["net_profit"] = values["gross_profit"].Sub(values["expenses"])
}

func profitRatios(values map[string]decimal.Decimal) map[string]*float64 {
	return map[string]*float64{
		"gross_margin": percentOf(values["gross_profit"], values["revenue"]),
		"net_margin":   percentOf(values["net_profit"], values["revenue"]),
	}
}

func averageTicket(revenue, count decimal.Decimal) decimal.Decimal {
	if count.IsZero() {
		return decimal.Zero
	}
	return revenue.Div(count).Round(2)
}

// percentOf returns part as a percentage of whole, or nil when whole is not
// positive.
func percentOf(part, whole decimal.Decimal) *float64 {
	if !whole.GreaterThan(decimal.Zero) {
		return nil
	}
	f, _ := part.Div(whole).Mul(hundred).Round(2).Float64()
	return &f
}
