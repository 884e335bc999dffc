package catalog

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
)

//go:embed seed.yaml
var seed []byte

// SeedSource names the embedded catalog in errors and logs.
const SeedSource = "embedded seed"

type fileCatalog struct {
	Version  string        `yaml:"version"`
	Carriers []fileCarrier `yaml:"carriers"`
	Services []fileService `yaml:"services"`
	Offers   []fileOffer   `yaml:"offers"`
}

type fileCarrier struct {
	Code                  string  `yaml:"code"`
	Name                  string  `yaml:"name"`
	Active                *bool   `yaml:"active"`
	CostMultiplier        float64 `yaml:"cost_multiplier"`
	Reliability           float64 `yaml:"reliability"`
	SupportsSameDay       bool    `yaml:"supports_same_day"`
	SupportsNextDay       bool    `yaml:"supports_next_day"`
	SupportsInternational bool    `yaml:"supports_international"`
}

type fileService struct {
	Code        string  `yaml:"code"`
	Carrier     string  `yaml:"carrier"`
	Name        string  `yaml:"name"`
	TransitDays int     `yaml:"transit_days"`
	BaseCost    float64 `yaml:"base_cost"`
	Ground      bool    `yaml:"ground"`
	Priority    bool    `yaml:"priority"`
}

type fileOffer struct {
	ID                int64    `yaml:"id"`
	OfferedBy         string   `yaml:"offered_by"`
	EntityID          int64    `yaml:"entity_id"`
	EntityName        string   `yaml:"entity_name"`
	Type              string   `yaml:"type"`
	MinimumOrderValue float64  `yaml:"minimum_order_value"`
	Nationwide        bool     `yaml:"nationwide"`
	EligibleZipCodes  []string `yaml:"eligible_zip_codes"`
	Categories        []string `yaml:"categories"`
	ServiceCodes      []string `yaml:"service_codes"`
	Active            *bool    `yaml:"active"`
	Terms             string   `yaml:"terms"`
}

// LoadFile loads and parses a YAML catalog from the given path.
// An empty path loads the embedded seed.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Parse(SeedSource, seed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperr.ConfigurationError{Source: path, Reason: fmt.Sprintf("read: %v", err)}
	}
	return Parse(path, data)
}

// Seed returns the embedded catalog.
func Seed() (*Catalog, error) {
	return Parse(SeedSource, seed)
}

// Parse parses YAML data into a validated Catalog.
func Parse(source string, data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &apperr.ConfigurationError{Source: source, Reason: fmt.Sprintf("parse yaml: %v", err)}
	}

	c, err := New(source, fc.carriers(), fc.services(), fc.offers())
	if err != nil {
		return nil, err
	}
	c.Version = version(fc.Version, data)
	return c, nil
}

// version is the declared version plus a content digest, so edits without a
// version bump still invalidate cached quotes.
func version(declared string, data []byte) string {
	sum := sha256.Sum256(data)
	if declared == "" {
		declared = "1"
	}
	return declared + "-" + hex.EncodeToString(sum[:6])
}

func (fc fileCatalog) carriers() []domain.Carrier {
	out := make([]domain.Carrier, 0, len(fc.Carriers))
	for _, c := range fc.Carriers {
		out = append(out, domain.Carrier{
			Code:                  c.Code,
			Name:                  c.Name,
			Active:                boolOr(c.Active, true),
			SupportsSameDay:       c.SupportsSameDay,
			SupportsNextDay:       c.SupportsNextDay,
			SupportsInternational: c.SupportsInternational,
			CostMultiplier:        c.CostMultiplier,
			Reliability:           c.Reliability,
		})
	}
	return out
}

func (fc fileCatalog) services() []domain.Service {
	out := make([]domain.Service, 0, len(fc.Services))
	for _, s := range fc.Services {
		out = append(out, domain.Service{
			Code:        s.Code,
			Name:        s.Name,
			CarrierCode: s.Carrier,
			TransitDays: s.TransitDays,
			BaseCost:    s.BaseCost,
			Ground:      s.Ground,
			Priority:    s.Priority,
		})
	}
	return out
}

func (fc fileCatalog) offers() []domain.FreeShippingOffer {
	out := make([]domain.FreeShippingOffer, 0, len(fc.Offers))
	for _, o := range fc.Offers {
		out = append(out, domain.FreeShippingOffer{
			ID:                o.ID,
			OfferedBy:         domain.OfferGrantor(o.OfferedBy),
			EntityID:          o.EntityID,
			EntityName:        o.EntityName,
			Type:              domain.OfferType(o.Type),
			MinimumOrderValue: o.MinimumOrderValue,
			Nationwide:        o.Nationwide,
			EligibleZipCodes:  o.EligibleZipCodes,
			Categories:        o.Categories,
			ServiceCodes:      o.ServiceCodes,
			Active:            boolOr(o.Active, true),
			Terms:             o.Terms,
		})
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
