package services

import (
	"context"
	"fmt"
	"time"

	"ctrip-server/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// EventService streams report lifecycle points into InfluxDB so the
// analytics trends endpoint can query them over time windows. The
// client is optional; without it every write is a no-op.
type EventService struct {
	influxClient influxdb2.Client
	org          string
	bucket       string
}

func NewEventService(influxClient influxdb2.Client, org, bucket string) *EventService {
	return &EventService{
		influxClient: influxClient,
		org:          org,
		bucket:       bucket,
	}
}

// RecordReportEvent writes one lifecycle point (created, status change,
// vote, comment, evidence) tagged by type and priority.
func (s *EventService) RecordReportEvent(event string, report *models.Report) error {
	if s.influxClient == nil {
		return nil // Skip if InfluxDB not available
	}

	ctx := context.Background()
	writeAPI := s.influxClient.WriteAPIBlocking(s.org, s.bucket)

	point := influxdb2.NewPoint(
		"report_events",
		map[string]string{
			"event":    event,
			"type":     string(report.Type),
			"priority": string(report.Priority),
			"status":   string(report.Status),
		},
		map[string]interface{}{
			"report_id": report.ID.String(),
			"count":     1,
		},
		time.Now(),
	)

	if err := writeAPI.WritePoint(ctx, point); err != nil {
		return err
	}
	return writeAPI.Flush(ctx)
}

// QueryTrend counts report events per day over the trailing window.
func (s *EventService) QueryTrend(event string, days int) (map[string]int64, error) {
	if s.influxClient == nil {
		return map[string]int64{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	queryAPI := s.influxClient.QueryAPI(s.org)
	flux := fmt.Sprintf(`from(bucket: %q)
		|> range(start: -%dd)
		|> filter(fn: (r) => r._measurement == "report_events" and r.event == %q and r._field == "count")
		|> aggregateWindow(every: 1d, fn: sum, createEmpty: true)`, s.bucket, days, event)

	result, err := queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, err
	}

	trend := make(map[string]int64)
	for result.Next() {
		record := result.Record()
		day := record.Time().Format("2006-01-02")
		if v, ok := record.Value().(int64); ok {
			trend[day] += v
		}
	}
	if result.Err() != nil {
		return nil, result.Err()
	}
	return trend, nil
}
