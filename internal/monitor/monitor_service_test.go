package monitor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MonitorService_Start(t *testing.T) {
	monitorService := MonitorService{}

	t.Run("initializes the prometheus client", func(t *testing.T) {
		err := monitorService.Start(MetricOptions{MetricType: MetricTypePrometheus})
		require.NoError(t, err)

		metricType, err := monitorService.GetMetricType()
		require.NoError(t, err)
		assert.Equal(t, MetricTypePrometheus, metricType)
	})

	t.Run("cannot be started twice", func(t *testing.T) {
		err := monitorService.Start(MetricOptions{MetricType: MetricTypePrometheus})
		assert.EqualError(t, err, "service already initialized")
	})

	t.Run("rejects an unknown metric type", func(t *testing.T) {
		err := (&MonitorService{}).Start(MetricOptions{MetricType: "MOCKMETRICTYPE"})
		assert.EqualError(t, err, `error creating monitor client: unknown metric type: "MOCKMETRICTYPE"`)
	})
}

func Test_MonitorService_requiresClient(t *testing.T) {
	monitorService := MonitorService{}
	wantErr := fmt.Errorf("client was not initialized")

	_, err := monitorService.GetMetricType()
	assert.Equal(t, wantErr, err)

	_, err = monitorService.GetMetricHttpHandler()
	assert.Equal(t, wantErr, err)

	err = monitorService.MonitorHttpRequestDuration(time.Second, HttpRequestLabels{})
	assert.Equal(t, wantErr, err)

	err = monitorService.MonitorCounters(CustomerImportsCounterTag, nil)
	assert.Equal(t, wantErr, err)

	err = monitorService.MonitorDuration(time.Second, PredictorRequestDurationTag, nil)
	assert.Equal(t, wantErr, err)

	err = monitorService.MonitorHistogram(1.5, PredictorRequestDurationTag, nil)
	assert.Equal(t, wantErr, err)
}

func Test_MonitorService_delegatesToClient(t *testing.T) {
	mMonitorClient := &MockMonitorClient{}
	monitorService := MonitorService{MonitorClient: mMonitorClient}

	mMonitorClient.On("MonitorCounters", CustomerExportsCounterTag, map[string]string(nil)).Once()
	require.NoError(t, monitorService.MonitorCounters(CustomerExportsCounterTag, nil))

	labels := EnrichmentLabels{Operation: "predict_value", Outcome: "success"}.ToMap()
	mMonitorClient.On("MonitorCounters", EnrichmentsCounterTag, labels).Once()
	require.NoError(t, monitorService.MonitorCounters(EnrichmentsCounterTag, labels))

	mMonitorClient.On("MonitorHistogram", 0.42, PredictorRequestDurationTag, map[string]string{"operation": "predict_value"}).Once()
	require.NoError(t, monitorService.MonitorHistogram(0.42, PredictorRequestDurationTag, PredictorRequestLabels{Operation: "predict_value"}.ToMap()))

	mMonitorClient.AssertExpectations(t)
}
