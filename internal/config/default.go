package config

import (
	"os"

	yamlcomment "github.com/zijiren233/yaml-comment"
)

// WriteDefault writes a commented default .mdrx.yml to path. Comments are
// generated from the same struct tags the JSON Schema generator reads, so
// the two descriptions can never drift apart.
func WriteDefault(path string) error {
	data, err := yamlcomment.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
