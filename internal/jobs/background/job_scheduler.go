package background

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"pharmacore/internal/analytics"
	"pharmacore/internal/repositories"
	"pharmacore/internal/services"
)

const (
	lowStockThreshold = 10
	reportLinkTTL     = 24 * time.Hour
)

// JobScheduler runs the offline reporting work: report cache refresh,
// low-stock scanning, and the daily restock CSV upload.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
	medicineRepo repositories.MedicineRepository
	reports      services.ReportStorage
	reportBucket string
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, medicineRepo repositories.MedicineRepository,
	reports services.ReportStorage, reportBucket string) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		medicineRepo: medicineRepo,
		reports:      reports,
		reportBucket: reportBucket,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	// Report refresh - every 5 minutes
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshReports, context.Background()),
		gocron.WithName("report-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	// Low stock scan - hourly
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(js.scanLowStock, context.Background()),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	// Restock CSV upload - daily
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.uploadRestockReport, context.Background()),
		gocron.WithName("restock-report-upload"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	return nil
}

// refreshReports warms the report cache so interactive requests see
// fresh numbers without paying for the aggregation.
func (js *JobScheduler) refreshReports(ctx context.Context) {
	if _, err := js.analyticsSvc.TopSellingMedicines(ctx, 10); err != nil {
		log.Printf("Failed to refresh top sellers report: %v", err)
	}
	if _, err := js.analyticsSvc.RestockRecommendations(ctx); err != nil {
		log.Printf("Failed to refresh restock report: %v", err)
	}
}

func (js *JobScheduler) scanLowStock(ctx context.Context) {
	medicines, err := js.medicineRepo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		log.Printf("Low stock scan failed: %v", err)
		return
	}
	for _, medicine := range medicines {
		log.Printf("ALERT: low stock for %s (id %d): %d left", medicine.Name, medicine.ID, medicine.Quantity)
	}
}

func (js *JobScheduler) uploadRestockReport(ctx context.Context) {
	var buf bytes.Buffer
	if err := js.analyticsSvc.WriteRestockCSV(ctx, &buf); err != nil {
		log.Printf("Failed to build restock CSV: %v", err)
		return
	}

	objectName := time.Now().Format("2006-01-02") + "-restock-" + uuid.NewString() + ".csv"
	if err := js.reports.UploadReport(ctx, js.reportBucket, objectName, &buf, int64(buf.Len()), "text/csv"); err != nil {
		log.Printf("Failed to upload restock report: %v", err)
		return
	}

	url, err := js.reports.GetPresignedURL(js.reportBucket, objectName, reportLinkTTL)
	if err != nil {
		log.Printf("Uploaded restock report %s (presign failed: %v)", objectName, err)
		return
	}
	log.Printf("Uploaded restock report %s, download: %s", objectName, url)
}
