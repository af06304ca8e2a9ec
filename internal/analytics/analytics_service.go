package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"pharmacore/internal/caching"
	"pharmacore/pkg/database"
)

const reportCacheTTL = 5 * time.Minute

// MedicineSales is one row of the top-sellers report.
type MedicineSales struct {
	MedicineID int64  `json:"medicine_id"`
	Name       string `json:"name"`
	TotalSold  int    `json:"total_sold"`
}

// MonthlyRevenue is one row of the revenue trend report.
type MonthlyRevenue struct {
	Month   time.Time `json:"month"`
	Revenue float64   `json:"revenue"`
}

// EmployeeSales is one row of the employee performance report.
type EmployeeSales struct {
	EmployeeID int64   `json:"employee_id"`
	Name       string  `json:"name"`
	TotalSales float64 `json:"total_sales"`
}

// RestockRecommendation estimates a reorder quantity from a 30-day
// rolling average of sales, flagged when fewer than 10 days of stock
// remain.
type RestockRecommendation struct {
	MedicineID       int64   `json:"medicine_id"`
	Name             string  `json:"name"`
	QuantityOnHand   int     `json:"quantity_on_hand"`
	AvgDailySales    float64 `json:"avg_daily_sales"`
	DaysOfStockLeft  float64 `json:"days_of_stock_left"`
	RecommendedOrder int     `json:"recommended_order"`
}

// AnalyticsService answers reporting queries over the sales history. It
// reads the store directly and never touches the workflow layer.
type AnalyticsService struct {
	db    database.DBTX
	cache caching.CacheService
}

func NewAnalyticsService(db database.DBTX, cache caching.CacheService) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cache}
}

// TopSellingMedicines returns the best sellers by total quantity sold.
func (s *AnalyticsService) TopSellingMedicines(ctx context.Context, limit int) ([]MedicineSales, error) {
	if limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("top-sellers:%d", limit)
	var cached []MedicineSales
	if hit, err := s.cache.GetReport(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: report cache read failed: %v", err)
	}

	query := `
		SELECT m.medicine_id, m.name, COALESCE(SUM(s.quantity), 0) AS total_sold
		FROM sales s
		JOIN medicines m ON m.medicine_id = s.medicine_id
		GROUP BY m.medicine_id, m.name
		ORDER BY total_sold DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, database.WrapError("top selling medicines", err)
	}
	defer rows.Close()

	var results []MedicineSales
	for rows.Next() {
		var row MedicineSales
		if err := rows.Scan(&row.MedicineID, &row.Name, &row.TotalSold); err != nil {
			return nil, database.WrapError("scan top seller row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError("iterate top seller rows", err)
	}

	if err := s.cache.SetReport(ctx, cacheKey, results, reportCacheTTL); err != nil {
		log.Printf("WARN: report cache write failed: %v", err)
	}
	return results, nil
}

// MonthlyRevenueTrend returns revenue summed per calendar month, most
// recent first.
func (s *AnalyticsService) MonthlyRevenueTrend(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	if months <= 0 {
		months = 12
	}

	query := `
		SELECT date_trunc('month', sale_date) AS month, SUM(total_price) AS revenue
		FROM sales
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, months)
	if err != nil {
		return nil, database.WrapError("monthly revenue", err)
	}
	defer rows.Close()

	var results []MonthlyRevenue
	for rows.Next() {
		var row MonthlyRevenue
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, database.WrapError("scan monthly revenue row", err)
		}
		results = append(results, row)
	}
	return results, database.WrapError("iterate monthly revenue rows", rows.Err())
}

// EmployeePerformance returns total sales value per employee.
func (s *AnalyticsService) EmployeePerformance(ctx context.Context) ([]EmployeeSales, error) {
	query := `
		SELECT e.employee_id, e.name, COALESCE(SUM(s.total_price), 0) AS total_sales
		FROM employees e
		LEFT JOIN sales s ON s.employee_id = e.employee_id
		GROUP BY e.employee_id, e.name
		ORDER BY total_sales DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, database.WrapError("employee performance", err)
	}
	defer rows.Close()

	var results []EmployeeSales
	for rows.Next() {
		var row EmployeeSales
		if err := rows.Scan(&row.EmployeeID, &row.Name, &row.TotalSales); err != nil {
			return nil, database.WrapError("scan employee performance row", err)
		}
		results = append(results, row)
	}
	return results, database.WrapError("iterate employee performance rows", rows.Err())
}

// RestockRecommendations flags medicines with under 10 days of stock
// left relative to their 30-day average daily sales and recommends
// ordering enough to cover 30 days.
func (s *AnalyticsService) RestockRecommendations(ctx context.Context) ([]RestockRecommendation, error) {
	cacheKey := "restock"
	var cached []RestockRecommendation
	if hit, err := s.cache.GetReport(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: report cache read failed: %v", err)
	}

	query := `
		SELECT m.medicine_id, m.name, m.quantity, COALESCE(SUM(s.quantity), 0) AS sold_30d
		FROM medicines m
		LEFT JOIN sales s ON s.medicine_id = m.medicine_id
			AND s.sale_date >= NOW() - INTERVAL '30 days'
		GROUP BY m.medicine_id, m.name, m.quantity
		ORDER BY m.name
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, database.WrapError("restock recommendations", err)
	}
	defer rows.Close()

	var results []RestockRecommendation
	for rows.Next() {
		var (
			rec     RestockRecommendation
			sold30d int
		)
		if err := rows.Scan(&rec.MedicineID, &rec.Name, &rec.QuantityOnHand, &sold30d); err != nil {
			return nil, database.WrapError("scan restock row", err)
		}

		rec.AvgDailySales = float64(sold30d) / 30.0
		if rec.AvgDailySales > 0 {
			rec.DaysOfStockLeft = float64(rec.QuantityOnHand) / rec.AvgDailySales
		} else {
			rec.DaysOfStockLeft = float64(rec.QuantityOnHand)
		}

		if rec.DaysOfStockLeft < 10 {
			need := int(math.Ceil(30*rec.AvgDailySales)) - rec.QuantityOnHand
			if need > 0 {
				rec.RecommendedOrder = need
			}
		}
		if rec.RecommendedOrder > 0 {
			results = append(results, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError("iterate restock rows", err)
	}

	if err := s.cache.SetReport(ctx, cacheKey, results, reportCacheTTL); err != nil {
		log.Printf("WARN: report cache write failed: %v", err)
	}
	return results, nil
}

// WriteRestockCSV renders the restock report as CSV.
func (s *AnalyticsService) WriteRestockCSV(ctx context.Context, w io.Writer) error {
	recs, err := s.RestockRecommendations(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"medicine_id", "name", "quantity_on_hand", "avg_daily_sales", "recommended_order"}); err != nil {
		return err
	}
	for _, rec := range recs {
		record := []string{
			fmt.Sprintf("%d", rec.MedicineID),
			rec.Name,
			fmt.Sprintf("%d", rec.QuantityOnHand),
			fmt.Sprintf("%.2f", rec.AvgDailySales),
			fmt.Sprintf("%d", rec.RecommendedOrder),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
