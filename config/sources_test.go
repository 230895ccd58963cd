package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileSource(t *testing.T) {
	{
		var f *FileSource
		assert.ErrorContains(t, f.Validate(), "file config is nil")
	}
	{
		f := &FileSource{}
		assert.ErrorContains(t, f.Validate(), "path is empty")
	}
	{
		f := &FileSource{Path: "records.jsonl"}
		assert.NoError(t, f.Validate())
		assert.Equal(t, "records.jsonl", f.GetName())
		f.Name = "orders"
		assert.Equal(t, "orders", f.GetName())
	}
}

func TestMongoDB_Validate(t *testing.T) {
	{
		var m *MongoDB
		assert.ErrorContains(t, m.Validate(), "mongodb config is nil")
	}
	{
		m := &MongoDB{}
		assert.ErrorContains(t, m.Validate(), "one of the mongodb settings is empty: host, username, password, database")
	}
	{
		m := &MongoDB{Host: "mongodb://localhost", Username: "u", Password: "p", Database: "db"}
		assert.ErrorContains(t, m.Validate(), "no collections passed in")
	}
	{
		m := &MongoDB{Host: "mongodb://localhost", Username: "u", Password: "p", Database: "db", Collections: []Collection{{}}}
		assert.ErrorContains(t, m.Validate(), "collection name must be passed in")
	}
	{
		m := &MongoDB{Host: "mongodb://localhost", Username: "u", Password: "p", Database: "db", Collections: []Collection{{Name: "c"}}}
		assert.NoError(t, m.Validate())
	}
}

func TestDynamoDB_Validate(t *testing.T) {
	{
		var d *DynamoDB
		assert.ErrorContains(t, d.Validate(), "dynamodb config is nil")
	}
	{
		d := &DynamoDB{AwsRegion: "us-east-1"}
		assert.ErrorContains(t, d.Validate(), "one of the dynamoDB configs is empty")
	}
	{
		d := &DynamoDB{AwsRegion: "us-east-1", AwsAccessKeyID: "id", AwsSecretAccessKey: "secret", TableName: "table"}
		assert.NoError(t, d.Validate())
	}
}
