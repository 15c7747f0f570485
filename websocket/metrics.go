// File: websocket/metrics.go
package websocket

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"chapel-site/logger"
)

// Namespace for all site metrics
var metricsNamespace = "ChapelSite"

// metricsEnabled gates CloudWatch publishing; off by default for local dev
// and tests, switched on from main in deployed environments.
var metricsEnabled = false

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// EnableMetrics turns on CloudWatch publishing.
func EnableMetrics() {
	metricsEnabled = true
}

// PublishSiteConnections pushes the current WebSocket connection count.
func PublishSiteConnections(count int) {
	putMetric("SiteConnections", float64(count), "Count")
}

// PublishUploadBytes pushes the size of a completed upload.
func PublishUploadBytes(bytes int64) {
	putMetric("UploadBytes", float64(bytes), "Bytes")
}

func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled {
		return
	}

	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
