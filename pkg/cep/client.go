package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound indicates that no provider could resolve the postal code.
var ErrNotFound = errors.New("cep nao encontrado")

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Address holds the fields resolved from a postal-code lookup.
type Address struct {
	CEP        string
	Logradouro string
	Bairro     string
	Cidade     string
	Estado     string
}

type provider interface {
	lookup(ctx context.Context, cep string) (*Address, error)
}

// Client resolves postal codes through a chain of HTTP providers. The first
// provider that answers wins; individual failures are swallowed and the next
// provider is tried.
type Client struct {
	providers []provider
	logger    *zap.Logger
}

// New builds the default two-provider chain (ViaCEP then BrasilAPI style
// endpoints) with a per-call timeout.
func New(primaryURL, secondaryURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		providers: []provider{
			&viaCEPProvider{baseURL: primaryURL, client: httpClient},
			&brasilAPIProvider{baseURL: secondaryURL, client: httpClient},
		},
		logger: logger,
	}
}

// Lookup resolves the given CEP, trying each provider in order.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	normalized := normalize(cep)
	if !cepPattern.MatchString(normalized) {
		return nil, ErrNotFound
	}

	for _, p := range c.providers {
		addr, err := p.lookup(ctx, normalized)
		if err != nil {
			c.logger.Debug("cep provider failed", zap.Error(err))
			continue
		}
		if addr != nil {
			return addr, nil
		}
	}
	return nil, ErrNotFound
}

func normalize(cep string) string {
	out := make([]byte, 0, len(cep))
	for i := 0; i < len(cep); i++ {
		if cep[i] >= '0' && cep[i] <= '9' {
			out = append(out, cep[i])
		}
	}
	return string(out)
}

type viaCEPProvider struct {
	baseURL string
	client  *http.Client
}

func (p *viaCEPProvider) lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/%s/json/", p.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep status %d", resp.StatusCode)
	}

	var body struct {
		CEP        string `json:"cep"`
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Localidade string `json:"localidade"`
		UF         string `json:"uf"`
		Erro       bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Erro {
		return nil, nil
	}

	return &Address{
		CEP:        cep,
		Logradouro: body.Logradouro,
		Bairro:     body.Bairro,
		Cidade:     body.Localidade,
		Estado:     body.UF,
	}, nil
}

type brasilAPIProvider struct {
	baseURL string
	client  *http.Client
}

func (p *brasilAPIProvider) lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brasilapi status %d", resp.StatusCode)
	}

	var body struct {
		CEP          string `json:"cep"`
		Street       string `json:"street"`
		Neighborhood string `json:"neighborhood"`
		City         string `json:"city"`
		State        string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &Address{
		CEP:        cep,
		Logradouro: body.Street,
		Bairro:     body.Neighborhood,
		Cidade:     body.City,
		Estado:     body.State,
	}, nil
}
