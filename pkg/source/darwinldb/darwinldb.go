// Package darwinldb speaks to the National Rail Darwin OpenLDBWS SOAP
// service. It serves both roles: the live departure board, and an implicit
// single-origin schedule source built by pairing board services with their
// subsequent calling points.
package darwinldb

import (
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/source/fetch"
)

const DefaultEndpoint = "https://lite.realtime.nationalrail.co.uk/OpenLDBWS/ldb12.asmx"

// Darwin is a high fidelity realtime feed, so matches tolerate little clock
// skew and unmatched legs still count as running to time.
const toleranceSeconds = 120

type Options struct {
	AccessToken string
	Endpoint    string

	InterchangeCRS  string
	InterchangeName string

	Timeout     time.Duration
	MaxAttempts int
}

type Source struct {
	opts   Options
	client *fetch.Client
}

func NewSource(opts Options) *Source {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}

	return &Source{
		opts:   opts,
		client: fetch.NewClient(opts.Timeout, opts.MaxAttempts),
	}
}

func (s *Source) Name() string {
	return "GB National Rail Darwin LDB"
}

func (s *Source) ToleranceSeconds() int {
	return toleranceSeconds
}

func (s *Source) DefaultStatus() model.Status {
	return model.StatusOnTime
}

// Classification returns the destination equality strategy as the implicit
// schedule under-splits legs: a through train reaching the destination is a
// single leg no matter how many service groups it crosses.
func (s *Source) Classification() model.ClassificationStrategy {
	return model.ClassificationDestinationEquality
}
