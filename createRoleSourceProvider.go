package postgres

import (
	"encoding/json"
	"os"
)

type CreateRoleSourceProvider struct {
	sources []CreateRoleSource
}

func (p *CreateRoleSourceProvider) Append(provider *CreateRoleSourceProvider) error {
	p.sources = append(p.sources, provider.sources...)
	return nil
}

func (p *CreateRoleSourceProvider) AppendSource(source CreateRoleSource) error {
	p.sources = append(p.sources, source)
	return nil
}

func (p *CreateRoleSourceProvider) Scan(buf []byte) error {
	var source []CreateRoleSource
	err := json.Unmarshal([]byte(buf), &source)
	if err != nil {
		return err
	}
	p.sources = append(p.sources, source...)
	return nil
}

func (p *CreateRoleSourceProvider) ScanString(text string) error {
	return p.Scan([]byte(text))
}

func (p *CreateRoleSourceProvider) ScanFile(filepath string) error {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		return err
	}

	return p.Scan(buf)
}

func (p *CreateRoleSourceProvider) Sources() []CreateRoleSource {
	return p.sources
}
