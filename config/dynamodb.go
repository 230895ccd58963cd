package config

import (
	"fmt"

	"github.com/artie-labs/partitioner/lib/stringutil"
)

type DynamoDB struct {
	AwsRegion          string   `yaml:"awsRegion"`
	AwsAccessKeyID     string   `yaml:"awsAccessKeyId"`
	AwsSecretAccessKey string   `yaml:"awsSecretAccessKey"`
	TableName          string   `yaml:"tableName"`
	KeyColumns         []string `yaml:"keyColumns,omitempty"`
}

func (d *DynamoDB) Validate() error {
	if d == nil {
		return fmt.Errorf("dynamodb config is nil")
	}

	if stringutil.Empty(d.AwsRegion, d.AwsAccessKeyID, d.AwsSecretAccessKey, d.TableName) {
		return fmt.Errorf("one of the dynamoDB configs is empty: awsRegion, awsAccessKeyID, awsSecretAccessKey or tableName")
	}

	return nil
}
