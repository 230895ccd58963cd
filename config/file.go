package config

import "fmt"

type FileSource struct {
	Path string `yaml:"path"`
	// Name - used as the record source, defaults to the path.
	Name       string   `yaml:"name,omitempty"`
	KeyColumns []string `yaml:"keyColumns,omitempty"`
}

func (f *FileSource) GetName() string {
	if f.Name == "" {
		return f.Path
	}
	return f.Name
}

func (f *FileSource) Validate() error {
	if f == nil {
		return fmt.Errorf("file config is nil")
	}

	if f.Path == "" {
		return fmt.Errorf("path is empty")
	}

	return nil
}

type FileDestination struct {
	Path string `yaml:"path"`
}

func (f *FileDestination) Validate() error {
	if f == nil {
		return fmt.Errorf("file destination config is nil")
	}

	if f.Path == "" {
		return fmt.Errorf("path is empty")
	}

	return nil
}
