package config

import (
	"fmt"
	"strings"
)

type S3 struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AwsRegion string `yaml:"awsRegion"`
	// Optional, the default AWS credential chain is used when these are empty.
	AwsAccessKeyID     string `yaml:"awsAccessKeyId,omitempty"`
	AwsSecretAccessKey string `yaml:"awsSecretAccessKey,omitempty"`
}

func (s *S3) GetPrefix() string {
	return strings.Trim(s.Prefix, "/")
}

func (s *S3) Validate() error {
	if s == nil {
		return fmt.Errorf("s3 config is nil")
	}

	if s.Bucket == "" {
		return fmt.Errorf("bucket is empty")
	}

	if s.AwsRegion == "" {
		return fmt.Errorf("awsRegion is empty")
	}

	if (s.AwsAccessKeyID == "") != (s.AwsSecretAccessKey == "") {
		return fmt.Errorf("awsAccessKeyId and awsSecretAccessKey must be passed in together")
	}

	return nil
}
