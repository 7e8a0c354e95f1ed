// Package influx writes dashboard timelines to InfluxDB v2 so they can be
// charted next to other energy series.
package influx

import (
	"context"
	"errors"
	"fmt"
	"math"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
)

// Measurement is the measurement every timeline point is written to.
const Measurement = "aurora_timeline"

// Series kinds.
const (
	SeriesTemporal = "temporal"
	SeriesSnapshot = "snapshot"
)

// ErrMissingURL is returned by NewSink without a server URL.
var ErrMissingURL = errors.New("influx URL is required")

// Options configures the connection.
type Options struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Series tags every point of one timeline.
type Series struct {
	Metric aggregate.Metric
	Calc   aggregate.CalculationMode
	Kind   string
}

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// Sink writes timeline rows as points.
type Sink struct {
	client influxdb2.Client
	writer pointWriter
}

// NewSink connects to the server and checks its health.
func NewSink(ctx context.Context, opts Options) (*Sink, error) {
	if opts.URL == "" {
		return nil, ErrMissingURL
	}

	client := influxdb2.NewClient(opts.URL, opts.Token)
	if _, err := client.Health(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to influx: %w", err)
	}

	return &Sink{
		client: client,
		writer: client.WriteAPIBlocking(opts.Org, opts.Bucket),
	}, nil
}

// Points converts rows to points, one per country and row, stamped with
// the start of the row's bucket. Non-finite values have no line protocol
// form and are skipped; skipped reports how many.
func Points(rows []aggregate.TimelineRow, series Series) (points []*write.Point, skipped int) {
	for _, row := range rows {
		for _, country := range row.Countries() {
			v := row.Values[country]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				skipped++
				continue
			}
			points = append(points, write.NewPoint(
				Measurement,
				map[string]string{
					"country": country,
					"metric":  series.Metric.String(),
					"calc":    series.Calc.String(),
					"series":  series.Kind,
				},
				map[string]interface{}{"value": v},
				row.Time(),
			))
		}
	}
	return points, skipped
}

// Write sends rows to the bucket and returns the number of points written.
func (s *Sink) Write(ctx context.Context, rows []aggregate.TimelineRow, series Series) (int, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "influx").
		Str("operation", "Write").
		Logger()

	points, skipped := Points(rows, series)
	if skipped > 0 {
		logger.Warn().Ctx(ctx).Int("skipped", skipped).Msg("non-finite timeline values not written")
	}
	if len(points) == 0 {
		return 0, nil
	}

	if err := s.writer.WritePoint(ctx, points...); err != nil {
		return 0, fmt.Errorf("writing %d points: %w", len(points), err)
	}

	logger.Debug().Ctx(ctx).
		Int("points", len(points)).
		Str("series", series.Kind).
		Msg("timeline written")
	return len(points), nil
}

// Close releases the client.
func (s *Sink) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
