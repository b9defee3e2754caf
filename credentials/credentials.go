// Package credentials provides oracle API key storage for the simkit CLI.
//
// Keys are kept in the system keyring when available, with an environment
// variable override for CI and a terminal prompt as the interactive
// fallback. The key never touches the config file.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	// keyringService is the service name used in the system keyring.
	keyringService = "simkit-cli"
	// keyringUser is the user/account name used in the system keyring.
	keyringUser = "oracle-api-key"

	// EnvAPIKey is the environment variable override, checked first.
	EnvAPIKey = "SIMKIT_API_KEY"
	// EnvAPIKeyCompat is the conventional variable honored as a fallback.
	EnvAPIKeyCompat = "OPENAI_API_KEY"
)

// ErrKeyringUnavailable indicates the system keyring is not available.
var ErrKeyringUnavailable = errors.New("system keyring unavailable")

// ErrNoAPIKey indicates no API key could be found anywhere.
var ErrNoAPIKey = errors.New("no oracle API key configured")

// Provider is an interface for obtaining the oracle API key.
type Provider interface {
	// GetAPIKey returns the API key, or an error if none is available.
	GetAPIKey() (string, error)

	// Description returns a human-readable description of the key source.
	Description() string
}

// KeyringProvider stores the API key in the system keyring
// (macOS Keychain, Windows Credential Manager, Linux Secret Service).
type KeyringProvider struct{}

// NewKeyringProvider creates a new KeyringProvider.
func NewKeyringProvider() *KeyringProvider {
	return &KeyringProvider{}
}

// GetAPIKey retrieves the API key from the system keyring.
func (p *KeyringProvider) GetAPIKey() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// SetAPIKey stores the API key in the system keyring.
func (p *KeyringProvider) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key must not be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("%w: storing key: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// DeleteAPIKey removes the API key from the system keyring. Deleting a key
// that was never stored is not an error.
func (p *KeyringProvider) DeleteAPIKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: deleting key: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Description returns a description of this provider.
func (p *KeyringProvider) Description() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	default:
		return "System Keyring (Secret Service)"
	}
}

// EnvProvider reads the API key from environment variables.
// This is primarily for CI environments and containerized runs.
type EnvProvider struct {
	vars []string
}

// NewEnvProvider creates an EnvProvider checking the given variables in order.
func NewEnvProvider(vars ...string) *EnvProvider {
	if len(vars) == 0 {
		vars = []string{EnvAPIKey, EnvAPIKeyCompat}
	}
	return &EnvProvider{vars: vars}
}

// GetAPIKey returns the first non-empty key among the configured variables.
func (p *EnvProvider) GetAPIKey() (string, error) {
	for _, v := range p.vars {
		if key := strings.TrimSpace(os.Getenv(v)); key != "" {
			return key, nil
		}
	}
	return "", ErrNoAPIKey
}

// Description returns a description of this provider.
func (p *EnvProvider) Description() string {
	return fmt.Sprintf("Environment variable (%s)", strings.Join(p.vars, ", "))
}

// PromptProvider asks for the key on the terminal without echoing it.
type PromptProvider struct {
	// In and Out default to stdin/stderr; tests substitute them.
	In  *os.File
	Out *os.File
}

// NewPromptProvider creates a PromptProvider over stdin/stderr.
func NewPromptProvider() *PromptProvider {
	return &PromptProvider{In: os.Stdin, Out: os.Stderr}
}

// GetAPIKey prompts for the key. Fails when stdin is not a terminal.
func (p *PromptProvider) GetAPIKey() (string, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: stdin is not a terminal", ErrNoAPIKey)
	}

	fmt.Fprint(p.Out, "Oracle API key: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// Description returns a description of this provider.
func (p *PromptProvider) Description() string {
	return "Interactive terminal prompt"
}

// ChainProvider tries each provider in order and returns the first key.
type ChainProvider struct {
	providers []Provider
}

// NewChainProvider creates a ChainProvider over the given providers.
func NewChainProvider(providers ...Provider) *ChainProvider {
	return &ChainProvider{providers: providers}
}

// GetAPIKey returns the first available key. ErrNoAPIKey and keyring
// outages move on to the next provider; other errors stop the chain.
func (c *ChainProvider) GetAPIKey() (string, error) {
	for _, p := range c.providers {
		key, err := p.GetAPIKey()
		if err == nil {
			return key, nil
		}
		if errors.Is(err, ErrNoAPIKey) || errors.Is(err, ErrKeyringUnavailable) {
			continue
		}
		return "", err
	}
	return "", ErrNoAPIKey
}

// Description lists the chained providers.
func (c *ChainProvider) Description() string {
	parts := make([]string, len(c.providers))
	for i, p := range c.providers {
		parts[i] = p.Description()
	}
	return strings.Join(parts, " -> ")
}

// DefaultProvider returns the standard lookup chain:
// environment variables, then the system keyring, then a terminal prompt.
func DefaultProvider() Provider {
	return NewChainProvider(
		NewEnvProvider(),
		NewKeyringProvider(),
		NewPromptProvider(),
	)
}
