package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gaurav-prasanna/linkharvest/links"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrNoOperation is returned when neither extraction nor fetching is selected.
	ErrNoOperation = errors.New("select at least one operation (extract URLs or fetch content)")
	// ErrURLFileMissing is returned when a fetch-only run points at a missing URL file.
	ErrURLFileMissing = errors.New("URL file does not exist")
)

// Reader names accepted in Config.Reader.
const (
	ReaderEndpoint = "jina"
	ReaderLocal    = "local"
)

// Config describes one run. It replaces the form state a UI would hold.
type Config struct {
	// Operations.
	Extract bool
	Fetch   bool

	// Files.
	InputFile   string `validate:"required_if=Extract true"`
	URLFile     string `validate:"required"`
	ContentFile string `validate:"required_if=Fetch true"`

	// Extraction.
	BaseURL  string // used as written, not validated
	Filter   links.Filter
	SameHost bool // keep only links on the base URL's host

	// Fetching.
	Reader        string `validate:"omitempty,oneof=jina local"`
	APIKey        string `validate:"required_if=Fetch true Reader jina"`
	Endpoint      string `validate:"omitempty,url"`
	Delay         time.Duration
	Timeout       time.Duration
	UserAgent     string
	LocalFormat   string `validate:"omitempty,oneof=markdown text"`
	RespectRobots bool
}

// Validate checks that the selected operations have what they need.
func (c *Config) Validate() error {
	if !c.Extract && !c.Fetch {
		return ErrNoOperation
	}
	if c.Reader == "" {
		c.Reader = ReaderEndpoint
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}
	if c.SameHost && hostOf(c.BaseURL) == "" {
		return fmt.Errorf("invalid run configuration: same-host filtering needs a base URL with a host")
	}
	if c.Delay < 0 {
		return fmt.Errorf("invalid run configuration: delay must not be negative")
	}
	if c.Fetch && !c.Extract {
		if _, err := os.Stat(c.URLFile); err != nil {
			return fmt.Errorf("%w: %s", ErrURLFileMissing, c.URLFile)
		}
	}
	return nil
}
