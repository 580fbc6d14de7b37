package doctor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/foliochat/folio/internal/core/config"
)

// pingTimeout bounds the reachability probe.
const pingTimeout = 5 * time.Second

// Pinger probes the backend.
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// BackendCheck verifies a base URL is configured and answers HTTP.
type BackendCheck struct {
	baseURL string
	pinger  Pinger
}

// NewBackendCheck creates a backend check for baseURL.
func NewBackendCheck(baseURL string, pinger Pinger) *BackendCheck {
	return &BackendCheck{baseURL: baseURL, pinger: pinger}
}

func (c *BackendCheck) Name() string {
	return "Backend"
}

func (c *BackendCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.baseURL == "" {
		result.Items = append(result.Items, CheckItem{
			Label:  "Base URL",
			Status: StatusFail,
			Detail: "not set (use --base-url, FOLIO_BASE_URL or base_url in config)",
		})
		return result
	}

	if err := config.ValidateBaseURL(c.baseURL); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Base URL",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Base URL",
		Status: StatusPass,
		Detail: c.baseURL,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	code, err := c.pinger.Ping(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "Reachable",
			Status: StatusFail,
			Detail: err.Error(),
		})
	case code >= http.StatusInternalServerError:
		result.Items = append(result.Items, CheckItem{
			Label:  "Reachable",
			Status: StatusWarn,
			Detail: fmt.Sprintf("server answered HTTP %d", code),
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  "Reachable",
			Status: StatusPass,
			Detail: fmt.Sprintf("HTTP %d", code),
		})
	}

	return result
}
