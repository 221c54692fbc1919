package repository

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// StatusError ответ API с кодом вне диапазона 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("github api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("github api returned status %d: %s", e.StatusCode, e.Body)
}

var transientStatuses = map[int]struct{}{
	429: {},
	502: {},
	503: {},
	504: {},
}

// IsTransient сообщает, стоит ли повторять запрос после ошибки err.
// Временными считаются rate limit, ошибки шлюза, таймауты, сброс соединения и сбои DNS.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		_, ok := transientStatuses[statusErr.StatusCode]
		return ok
	}

	// Соединение, закрытое без ответа, net/http отдает как io.EOF
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
