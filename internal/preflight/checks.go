package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const (
	serviceName  = "Whisper Summary service"
	ntfyName     = "ntfy"
	checkTimeout = 5 * time.Second
)

// CheckService verifies that the service base address answers HTTP. Any status
// counts as reachable because the root path is not part of the service API.
func CheckService(ctx context.Context, baseURL string, client *http.Client) Result {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: serviceName, Detail: "missing base url"}
	}
	status, err := probe(ctx, client, base+"/")
	if err != nil {
		return Result{Name: serviceName, Detail: fmt.Sprintf("%s (%s)", base, summarizeError(err))}
	}
	return Result{Name: serviceName, Passed: true, Detail: fmt.Sprintf("%s (HTTP %d)", base, status)}
}

// CheckNtfy verifies that the ntfy server hosting topic is reachable.
func CheckNtfy(ctx context.Context, topic string, client *http.Client) Result {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{Name: ntfyName, Detail: "missing topic"}
	}
	status, err := probe(ctx, client, topic)
	if err != nil {
		return Result{Name: ntfyName, Detail: summarizeError(err)}
	}
	if status >= http.StatusInternalServerError {
		return Result{Name: ntfyName, Detail: fmt.Sprintf("server error (%d)", status)}
	}
	return Result{Name: ntfyName, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func probe(ctx context.Context, client *http.Client, target string) (int, error) {
	if client == nil {
		client = &http.Client{Timeout: checkTimeout}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "unreachable: " + opErr.Err.Error()
	}
	return err.Error()
}
