package ephemeris

import (
	"time"

	xhttp "SajuPulse/pkg/http"
)

const defaultTimeout = 3 * time.Second

func newServiceClient(baseURL string, timeout time.Duration, attempts int) *xhttp.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return xhttp.NewClient(baseURL,
		xhttp.WithTimeout(timeout),
		xhttp.WithRetry(attempts, 50*time.Millisecond),
		xhttp.WithHeader("User-Agent", "sajupulse"),
	)
}
