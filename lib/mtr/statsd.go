package mtr

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/artie-labs/partitioner/lib/stringutil"
)

func telemetryAddress() string {
	host := os.Getenv("TELEMETRY_HOST")
	port := os.Getenv("TELEMETRY_PORT")
	if stringutil.Empty(host, port) {
		return DefaultAddr
	}
	return fmt.Sprintf("%s:%s", host, port)
}

func New(namespace string, tags []string, samplingRate float64) (Client, error) {
	address := telemetryAddress()
	if address != DefaultAddr {
		slog.Info("Overriding telemetry address with env vars", slog.String("address", address))
	}

	datadogClient, err := statsd.New(address,
		statsd.WithNamespace(stringutil.Override(DefaultNamespace, namespace)),
		statsd.WithTags(tags),
	)
	if err != nil {
		return nil, err
	}
	return &statsClient{
		client: datadogClient,
		rate:   samplingRate,
	}, nil
}
