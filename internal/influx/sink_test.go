package influx

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
)

type fakeWriter struct {
	points []*write.Point
	err    error
}

func (f *fakeWriter) WritePoint(_ context.Context, point ...*write.Point) error {
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, point...)
	return nil
}

func testRows() []aggregate.TimelineRow {
	jan := aggregate.NewTimelineRow("Jan 2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	jan.Values["Germany"] = 25
	jan.Values["Spain"] = math.NaN()
	feb := aggregate.NewTimelineRow("Feb 2023", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	feb.Values["Germany"] = 30
	feb.Values["Spain"] = math.Inf(1)
	return []aggregate.TimelineRow{jan, feb}
}

func testSeries() Series {
	return Series{Metric: aggregate.MetricCarbon, Calc: aggregate.CalcAverage, Kind: SeriesTemporal}
}

func TestPoints(t *testing.T) {
	points, skipped := Points(testRows(), testSeries())
	assert.Equal(t, 2, skipped)
	require.Len(t, points, 2)

	p := points[0]
	assert.Equal(t, Measurement, p.Name())
	assert.True(t, p.Time().Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{
		"country": "Germany",
		"metric":  "carbon",
		"calc":    "average",
		"series":  "temporal",
	}, tags)

	require.Len(t, p.FieldList(), 1)
	assert.Equal(t, "value", p.FieldList()[0].Key)
	assert.InDelta(t, 25.0, p.FieldList()[0].Value, 1e-9)

	line := write.PointToLineProtocol(p, time.Second)
	assert.True(t, strings.HasPrefix(line, "aurora_timeline,"))
	assert.Contains(t, line, "country=Germany")
}

func TestSink_Write(t *testing.T) {
	ctx := context.Background()

	fw := &fakeWriter{}
	s := &Sink{writer: fw}
	n, err := s.Write(ctx, testRows(), testSeries())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, fw.points, 2)

	n, err = s.Write(ctx, nil, testSeries())
	require.NoError(t, err)
	assert.Zero(t, n)

	boom := errors.New("boom")
	s = &Sink{writer: &fakeWriter{err: boom}}
	_, err = s.Write(ctx, testRows(), testSeries())
	require.ErrorIs(t, err, boom)

	s.Close()
}

func TestNewSink_MissingURL(t *testing.T) {
	_, err := NewSink(context.Background(), Options{})
	require.ErrorIs(t, err, ErrMissingURL)
}

func TestSink_Integration(t *testing.T) {
	url := os.Getenv("AURORA_TEST_INFLUX_URL")
	if url == "" {
		t.Skip("AURORA_TEST_INFLUX_URL not set")
	}

	ctx := context.Background()
	s, err := NewSink(ctx, Options{
		URL:    url,
		Token:  os.Getenv("AURORA_TEST_INFLUX_TOKEN"),
		Org:    os.Getenv("AURORA_TEST_INFLUX_ORG"),
		Bucket: os.Getenv("AURORA_TEST_INFLUX_BUCKET"),
	})
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Write(ctx, testRows(), testSeries())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
