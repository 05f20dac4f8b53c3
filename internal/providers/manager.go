package providers

import (
	"fmt"
	"strings"
)

type NamedProvider struct {
	Ref      ProviderRef
	Provider CompletionProvider
}

// Manager holds the configured completion providers in declaration order.
// The first provider is the default; callers may select by name.
type Manager struct {
	providers []NamedProvider
}

func NewManager(list string) (*Manager, error) {
	refs := ParseProviderList(list)
	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref)
		if err != nil {
			return nil, err
		}
		m.providers = append(m.providers, NamedProvider{Ref: ref, Provider: p})
	}
	if len(m.providers) == 0 {
		m.providers = []NamedProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

func (m *Manager) Default() CompletionProvider {
	return m.providers[0].Provider
}

func (m *Manager) ByName(name string) (CompletionProvider, ProviderRef, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil, ProviderRef{}, false
	}
	for i := range m.providers {
		if strings.ToLower(m.providers[i].Ref.Name) == target {
			return m.providers[i].Provider, m.providers[i].Ref, true
		}
	}
	return nil, ProviderRef{}, false
}

func (m *Manager) Count() int { return len(m.providers) }

func buildProvider(ref ProviderRef) (CompletionProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
